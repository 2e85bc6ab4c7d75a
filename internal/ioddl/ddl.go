package ioddl

import (
	"fmt"

	"github.com/gnames/gnview/pkg/view"
	"github.com/jackc/pgx/v5"
)

// CreateView returns CREATE VIEW <name> AS <definition>.
func CreateView(name view.Name, definition string) (string, error) {
	def, err := prepare(name, definition)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE VIEW %s AS\n%s", name.Sanitize(), def), nil
}

// ReplaceView returns CREATE OR REPLACE VIEW <name> AS <definition>.
func ReplaceView(name view.Name, definition string) (string, error) {
	def, err := prepare(name, definition)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"CREATE OR REPLACE VIEW %s AS\n%s", name.Sanitize(), def,
	), nil
}

// CreateMaterializedView returns
// CREATE MATERIALIZED VIEW <name> AS <definition> [WITH NO DATA].
// The modifier goes on its own line, so a trailing line comment of the
// definition cannot swallow it.
func CreateMaterializedView(
	name view.Name,
	definition string,
	populated bool,
) (string, error) {
	def, err := prepare(name, definition)
	if err != nil {
		return "", err
	}
	stmt := fmt.Sprintf(
		"CREATE MATERIALIZED VIEW %s AS\n%s", name.Sanitize(), def,
	)
	if !populated {
		stmt += "\nWITH NO DATA"
	}
	return stmt, nil
}

// DropView returns DROP VIEW <name>.
func DropView(name view.Name) string {
	return "DROP VIEW " + name.Sanitize()
}

// DropMaterializedView returns DROP MATERIALIZED VIEW <name>.
func DropMaterializedView(name view.Name) string {
	return "DROP MATERIALIZED VIEW " + name.Sanitize()
}

// DropMaterializedViewIfExists returns
// DROP MATERIALIZED VIEW IF EXISTS <name>.
func DropMaterializedViewIfExists(name view.Name) string {
	return "DROP MATERIALIZED VIEW IF EXISTS " + name.Sanitize()
}

// RenameMaterializedView returns
// ALTER MATERIALIZED VIEW <name> RENAME TO <newName>.
// The new name stays in the schema of the old one.
func RenameMaterializedView(name view.Name, newName string) string {
	return fmt.Sprintf(
		"ALTER MATERIALIZED VIEW %s RENAME TO %s",
		name.Sanitize(), pgx.Identifier{newName}.Sanitize(),
	)
}

// RefreshMaterializedView returns
// REFRESH MATERIALIZED VIEW [CONCURRENTLY] <name>.
func RefreshMaterializedView(name view.Name, concurrently bool) string {
	if concurrently {
		return "REFRESH MATERIALIZED VIEW CONCURRENTLY " + name.Sanitize()
	}
	return "REFRESH MATERIALIZED VIEW " + name.Sanitize()
}

func prepare(name view.Name, definition string) (string, error) {
	def := view.Normalize(definition)
	if def == "" {
		return "", view.EmptyDefinitionError(name)
	}
	return def, nil
}
