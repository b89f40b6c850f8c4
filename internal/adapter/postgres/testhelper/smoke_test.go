package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)
	ctx := context.Background()

	var n int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM kv_entries WHERE key = 'smoke'`).Scan(&n)
	if err != nil {
		t.Fatalf("expected kv_entries table after migrations, got error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty lookup, got %d rows", n)
	}

	var app string
	if err := pool.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&app); err != nil {
		t.Fatalf("read application_name: %v", err)
	}
	if app != "vocabcoach" {
		t.Errorf("application_name = %q, want vocabcoach", app)
	}

	if DSN(t) == "" {
		t.Error("expected shared DSN")
	}
}
