// Package iorefresh implements lifecycle.Refresher.
//
// A refresh of the target may be preceded by refreshes of materialized
// views it depends on (cascade). Dependencies get the concurrency flag of
// the request, but a dependency that cannot be refreshed concurrently
// (unpopulated, or without an eligible unique index) is refreshed the
// standard way instead of failing the cascade. Only the target enforces
// the concurrent refresh precondition.
package iorefresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnview/internal/ioddl"
	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
)

// Event describes one finished REFRESH statement.
type Event struct {
	Name view.Name

	// Concurrently is the strategy that was used.
	Concurrently bool

	// Step is 1-based position of the refresh in the request, Total is
	// the number of refreshes of the request (dependencies and target).
	Step, Total int

	Duration time.Duration
}

// Option configures the engine.
type Option func(*engine)

// OptObserver sets a function that is called after every refresh.
func OptObserver(fn func(Event)) Option {
	return func(e *engine) {
		e.observer = fn
	}
}

type engine struct {
	gate     lifecycle.Gate
	catalog  lifecycle.Catalog
	resolver lifecycle.Resolver
	observer func(Event)
}

// New creates a Refresher.
func New(
	gate lifecycle.Gate,
	catalog lifecycle.Catalog,
	resolver lifecycle.Resolver,
	opts ...Option,
) lifecycle.Refresher {
	res := &engine{
		gate:     gate,
		catalog:  catalog,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Refresh implements lifecycle.Refresher.
func (e *engine) Refresh(
	ctx context.Context,
	conn db.Conn,
	req view.RefreshRequest,
) error {
	caps, err := e.gate.Capabilities(ctx, conn)
	if err != nil {
		return err
	}
	features := []view.Feature{view.FeatureMaterializedViews}
	if req.Concurrently {
		features = append(features, view.FeatureConcurrentRefresh)
	}
	if err = caps.Require(features...); err != nil {
		return err
	}

	target, populated, err := e.catalog.Lookup(ctx, conn, req.Target)
	if err != nil {
		return err
	}

	concurrently := req.Concurrently
	if concurrently && !populated {
		slog.Info("Materialized view is not populated, using standard refresh",
			"view", target.String())
		concurrently = false
	}
	if concurrently {
		ok, err := e.hasEligibleIndex(ctx, conn, target)
		if err != nil {
			return err
		}
		if !ok {
			return view.ConcurrentRefreshPreconditionError(target)
		}
	}

	var deps []view.Name
	if req.Cascade {
		deps, err = e.resolver.DependenciesOf(ctx, conn, target)
		if err != nil {
			return err
		}
	}

	total := len(deps) + 1
	for i, dep := range deps {
		depConcurrently := false
		if req.Concurrently {
			depConcurrently, err = e.feasible(ctx, conn, dep)
			if err != nil {
				return err
			}
		}
		err = e.refresh(ctx, conn, dep, depConcurrently, i+1, total)
		if err != nil {
			return err
		}
	}

	return e.refresh(ctx, conn, target, concurrently, total, total)
}

// feasible reports whether a dependency can be refreshed concurrently.
func (e *engine) feasible(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) (bool, error) {
	_, populated, err := e.catalog.Lookup(ctx, conn, name)
	if err != nil {
		return false, err
	}
	if !populated {
		slog.Info("Dependency is not populated, using standard refresh",
			"view", name.String())
		return false, nil
	}
	ok, err := e.hasEligibleIndex(ctx, conn, name)
	if err != nil {
		return false, err
	}
	if !ok {
		slog.Info("Dependency has no eligible unique index, using standard refresh",
			"view", name.String())
	}
	return ok, nil
}

func (e *engine) hasEligibleIndex(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) (bool, error) {
	indexes, err := e.catalog.UniqueIndexes(ctx, conn, name)
	if err != nil {
		return false, err
	}
	return view.HasEligibleIndex(indexes), nil
}

func (e *engine) refresh(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	concurrently bool,
	step, total int,
) error {
	start := time.Now()
	err := ioddl.Exec(ctx, conn,
		ioddl.RefreshMaterializedView(name, concurrently))
	if err != nil {
		return err
	}

	ev := Event{
		Name:         name,
		Concurrently: concurrently,
		Step:         step,
		Total:        total,
		Duration:     time.Since(start),
	}
	slog.Info("Refreshed materialized view",
		"view", name.String(),
		"concurrently", concurrently,
		"step", step,
		"total", total,
		"duration", ev.Duration,
	)
	if e.observer != nil {
		e.observer(ev)
	}
	return nil
}
