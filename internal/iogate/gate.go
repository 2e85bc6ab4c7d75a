// Package iogate implements lifecycle.Gate. It reads the server version
// once and maps it to view.Capabilities.
package iogate

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
	"golang.org/x/sync/singleflight"
)

const versionQuery = "SELECT current_setting('server_version_num')"

type gate struct {
	mu    sync.Mutex
	caps  *view.Capabilities
	group singleflight.Group
}

// New creates a Gate that inspects the backend on the first call and
// memoizes the result.
func New() lifecycle.Gate {
	return &gate{}
}

// NewFixed creates a Gate that never talks to the backend and always
// returns caps.
func NewFixed(caps view.Capabilities) lifecycle.Gate {
	return &gate{caps: &caps}
}

// Capabilities implements lifecycle.Gate.
func (g *gate) Capabilities(
	ctx context.Context,
	conn db.Conn,
) (view.Capabilities, error) {
	if caps, ok := g.cached(); ok {
		return caps, nil
	}

	res, err, _ := g.group.Do("caps", func() (any, error) {
		if caps, ok := g.cached(); ok {
			return caps, nil
		}
		version, err := serverVersion(ctx, conn)
		if err != nil {
			return view.Capabilities{}, err
		}
		caps := view.CapabilitiesForVersion(version)
		slog.Debug("Detected server capabilities",
			"server_version", version,
			"materialized_views", caps.MaterializedViews,
			"concurrent_refresh", caps.ConcurrentRefresh,
		)
		g.mu.Lock()
		g.caps = &caps
		g.mu.Unlock()
		return caps, nil
	})
	if err != nil {
		return view.Capabilities{}, err
	}
	return res.(view.Capabilities), nil
}

func (g *gate) cached() (view.Capabilities, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.caps == nil {
		return view.Capabilities{}, false
	}
	return *g.caps, true
}

func serverVersion(ctx context.Context, conn db.Conn) (int, error) {
	var s string
	if err := conn.QueryRow(ctx, versionQuery).Scan(&s); err != nil {
		return 0, err
	}
	version, err := strconv.Atoi(s)
	if err != nil {
		return 0, VersionParseError(s, err)
	}
	return version, nil
}
