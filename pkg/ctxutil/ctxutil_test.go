package ctxutil

import (
	"context"
	"testing"
)

func TestWithProfileKey_And_ProfileKeyFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithProfileKey(context.Background(), "user_an")

	got, ok := ProfileKeyFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for stored key")
	}
	if got != "user_an" {
		t.Fatalf("expected user_an, got %s", got)
	}
}

func TestProfileKeyFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := ProfileKeyFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != "" {
		t.Fatalf("expected empty key, got %s", got)
	}
}

func TestProfileKeyFromCtx_EmptyKey(t *testing.T) {
	t.Parallel()

	_, ok := ProfileKeyFromCtx(WithProfileKey(context.Background(), ""))
	if ok {
		t.Fatal("expected ok=false for empty key")
	}
}

func TestProfileKeyFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("profile_key"), 42)

	if _, ok := ProfileKeyFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	got := RequestIDFromCtx(ctx)
	if got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got := RequestIDFromCtx(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestRequestIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("request_id"), 12345)

	got := RequestIDFromCtx(ctx)
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
