package database

import (
	"context"
	"strings"
	"testing"
)

func TestConnect_Validation(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}

	if _, err := Connect(context.Background(), "invalid-dsn"); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}

func TestSchemaDDL_Idempotent(t *testing.T) {
	for _, ddl := range schemaDDL {
		if !strings.Contains(ddl, "IF NOT EXISTS") {
			t.Fatalf("statement is not idempotent: %s", ddl)
		}
	}
}
