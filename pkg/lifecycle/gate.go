// Package lifecycle defines contracts of the components that manage views
// and materialized views. Implementations live in internal/io* packages.
//
// Every component receives the connection handle explicitly with each
// call, so the same component works against a pool, a single connection or
// an open transaction.
package lifecycle

import (
	"context"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/view"
)

// Gate reports what the backend supports.
type Gate interface {
	// Capabilities inspects the backend version once and returns the same
	// value for the lifetime of the gate.
	Capabilities(ctx context.Context, conn db.Conn) (view.Capabilities, error)
}
