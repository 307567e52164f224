package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// ApplySchema creates any missing tables for the connected engine.
// Statements run one at a time so the MySQL DSN does not need multiStatements.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	name := "schema/mysql.sql"
	if db.DriverName() == "postgres" {
		name = "schema/postgres.sql"
	}
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	for _, stmt := range SplitStatements(string(raw)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return Classify(err, "apply schema")
		}
	}
	return nil
}

// SplitStatements breaks a DDL script on semicolons, dropping blanks.
func SplitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			stmts = append(stmts, trimmed)
		}
	}
	return stmts
}
