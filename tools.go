//go:build tools

package tools

// This file tracks CLI tools used during development. It is not compiled
// into any binary.
//
// - github.com/matryer/moq regenerates the *_mock_test.go files (go generate ./...)
// - github.com/pressly/goose/v3/cmd/goose applies migrations/ by hand against Postgres
