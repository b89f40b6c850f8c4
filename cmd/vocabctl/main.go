// Command vocabctl administers profile storage: listing profiles, importing
// word lists, running migrations and printing study statistics.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
