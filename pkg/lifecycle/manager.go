package lifecycle

import (
	"context"

	"github.com/gnames/gnview/pkg/view"
)

// Manager is the caller-facing set of view lifecycle operations. It is
// bound to one connection handle; names are given as text and parsed with
// view.ParseName.
type Manager interface {
	CreateView(ctx context.Context, name, definition string) error
	CreateMaterializedView(ctx context.Context, name, definition string, noData bool) error
	ReplaceView(ctx context.Context, name, definition string) error
	DropView(ctx context.Context, name string) error
	DropMaterializedView(ctx context.Context, name string) error

	// RefreshMaterializedView refreshes a materialized view, optionally
	// after its dependencies and optionally concurrently.
	RefreshMaterializedView(ctx context.Context, name string, cascade, concurrently bool) error

	// Views lists views and materialized views ordered by (schema, name).
	Views(ctx context.Context) ([]view.Descriptor, error)

	// IsPopulated reports whether a materialized view holds data.
	IsPopulated(ctx context.Context, name string) (bool, error)

	// UpdateMaterializedView redefines a materialized view.
	UpdateMaterializedView(ctx context.Context, name, definition string, sideBySide bool) error
}

// DefinitionSource provides view definitions kept outside the database.
type DefinitionSource interface {
	// Definition returns the normalized definition of a view at a version.
	Definition(name string, version int) (string, error)
}
