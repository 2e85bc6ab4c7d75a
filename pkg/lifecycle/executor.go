package lifecycle

import (
	"context"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/view"
)

// Executor issues DDL that creates, replaces, renames and drops views and
// materialized views. Definitions are normalized before use.
type Executor interface {
	CreateView(ctx context.Context, conn db.Conn, name view.Name, definition string) error

	// CreateMaterializedView creates a materialized view. When populated is
	// false the view is created WITH NO DATA.
	CreateMaterializedView(
		ctx context.Context,
		conn db.Conn,
		name view.Name,
		definition string,
		populated bool,
	) error

	// ReplaceView redefines a plain view in place (CREATE OR REPLACE VIEW).
	ReplaceView(ctx context.Context, conn db.Conn, name view.Name, definition string) error

	DropView(ctx context.Context, conn db.Conn, name view.Name) error

	DropMaterializedView(ctx context.Context, conn db.Conn, name view.Name) error

	// RenameMaterializedView renames a materialized view within its schema.
	RenameMaterializedView(
		ctx context.Context,
		conn db.Conn,
		name view.Name,
		newName string,
	) error
}

// Updater redefines an existing materialized view.
type Updater interface {
	// UpdateMaterializedView replaces the definition of a materialized
	// view. With sideBySide the replacement is built under a temporary name
	// and swapped in, so the name keeps resolving during the update.
	UpdateMaterializedView(
		ctx context.Context,
		conn db.Conn,
		name view.Name,
		definition string,
		sideBySide bool,
	) error
}
