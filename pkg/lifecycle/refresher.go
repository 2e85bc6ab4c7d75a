package lifecycle

import (
	"context"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/view"
)

// Refresher refreshes materialized views.
type Refresher interface {
	// Refresh issues REFRESH MATERIALIZED VIEW for the target, after its
	// dependencies when the request cascades. The strategy (concurrent or
	// standard) is chosen from the request and the state of the target.
	Refresh(ctx context.Context, conn db.Conn, req view.RefreshRequest) error
}
