package lifecycle

import (
	"context"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/view"
)

// Catalog reads views, materialized views and their indexes from the live
// database catalog. Nothing is cached between calls.
type Catalog interface {
	// Views returns views and materialized views reachable through the
	// search path, ordered by (schema, name).
	Views(ctx context.Context, conn db.Conn) ([]view.Descriptor, error)

	// IsPopulated reports whether a materialized view holds data.
	// It fails with ObjectNotFound error if there is no such materialized
	// view.
	IsPopulated(ctx context.Context, conn db.Conn, name view.Name) (bool, error)

	// Lookup resolves a materialized view name through the search path and
	// returns the fully qualified name together with its population state.
	Lookup(
		ctx context.Context,
		conn db.Conn,
		name view.Name,
	) (view.Name, bool, error)

	// UniqueIndexes returns valid unique indexes of a relation.
	UniqueIndexes(
		ctx context.Context,
		conn db.Conn,
		name view.Name,
	) ([]view.UniqueIndex, error)

	// RowCount returns the number of rows of a relation.
	RowCount(ctx context.Context, conn db.Conn, name view.Name) (int64, error)
}

// Resolver finds materialized views a target depends on.
type Resolver interface {
	// Graph reads dependency edges between views and materialized views.
	Graph(ctx context.Context, conn db.Conn) ([]view.Node, error)

	// DependenciesOf returns materialized views the resolved target depends
	// on, transitively, in dependency-first order, without the target.
	DependenciesOf(
		ctx context.Context,
		conn db.Conn,
		target view.Name,
	) ([]view.Name, error)
}
