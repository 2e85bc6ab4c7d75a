// Package ioview implements lifecycle.Manager, the caller-facing set of
// view lifecycle operations. It binds the components of internal/io*
// packages to one connection handle.
package ioview

import (
	"context"

	"github.com/gnames/gnview/internal/iocatalog"
	"github.com/gnames/gnview/internal/ioddl"
	"github.com/gnames/gnview/internal/iodeps"
	"github.com/gnames/gnview/internal/iogate"
	"github.com/gnames/gnview/internal/iorefresh"
	"github.com/gnames/gnview/internal/ioupdate"
	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
)

type manager struct {
	conn db.Conn

	gate      lifecycle.Gate
	catalog   lifecycle.Catalog
	executor  lifecycle.Executor
	refresher lifecycle.Refresher
	updater   lifecycle.Updater

	refreshOpts []iorefresh.Option
}

// Option configures the manager.
type Option func(*manager)

// OptGate replaces the gate that inspects the server, for example with
// iogate.NewFixed.
func OptGate(gate lifecycle.Gate) Option {
	return func(m *manager) {
		m.gate = gate
	}
}

// OptRefreshObserver sets a function called after every refresh.
func OptRefreshObserver(fn func(iorefresh.Event)) Option {
	return func(m *manager) {
		m.refreshOpts = append(m.refreshOpts, iorefresh.OptObserver(fn))
	}
}

// New creates a Manager bound to conn.
func New(conn db.Conn, opts ...Option) lifecycle.Manager {
	return newManager(conn, opts...)
}

func newManager(conn db.Conn, opts ...Option) *manager {
	res := &manager{conn: conn, gate: iogate.New()}
	for _, opt := range opts {
		opt(res)
	}
	res.catalog = iocatalog.New(res.gate)
	res.executor = ioddl.New(res.gate)
	res.refresher = iorefresh.New(
		res.gate, res.catalog, iodeps.New(), res.refreshOpts...,
	)
	res.updater = ioupdate.New(res.gate, res.catalog)
	return res
}

// CreateView implements lifecycle.Manager.
func (m *manager) CreateView(ctx context.Context, name, definition string) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	return m.executor.CreateView(ctx, m.conn, n, definition)
}

// CreateMaterializedView implements lifecycle.Manager.
func (m *manager) CreateMaterializedView(
	ctx context.Context,
	name, definition string,
	noData bool,
) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	return m.executor.CreateMaterializedView(ctx, m.conn, n, definition, !noData)
}

// ReplaceView implements lifecycle.Manager.
func (m *manager) ReplaceView(ctx context.Context, name, definition string) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	return m.executor.ReplaceView(ctx, m.conn, n, definition)
}

// DropView implements lifecycle.Manager.
func (m *manager) DropView(ctx context.Context, name string) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	return m.executor.DropView(ctx, m.conn, n)
}

// DropMaterializedView implements lifecycle.Manager.
func (m *manager) DropMaterializedView(ctx context.Context, name string) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	return m.executor.DropMaterializedView(ctx, m.conn, n)
}

// RefreshMaterializedView implements lifecycle.Manager.
func (m *manager) RefreshMaterializedView(
	ctx context.Context,
	name string,
	cascade, concurrently bool,
) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	req := view.RefreshRequest{
		Target:       n,
		Cascade:      cascade,
		Concurrently: concurrently,
	}
	return m.refresher.Refresh(ctx, m.conn, req)
}

// Views implements lifecycle.Manager.
func (m *manager) Views(ctx context.Context) ([]view.Descriptor, error) {
	return m.catalog.Views(ctx, m.conn)
}

// IsPopulated implements lifecycle.Manager.
func (m *manager) IsPopulated(ctx context.Context, name string) (bool, error) {
	n, err := view.ParseName(name)
	if err != nil {
		return false, err
	}
	return m.catalog.IsPopulated(ctx, m.conn, n)
}

// UpdateMaterializedView implements lifecycle.Manager.
func (m *manager) UpdateMaterializedView(
	ctx context.Context,
	name, definition string,
	sideBySide bool,
) error {
	n, err := view.ParseName(name)
	if err != nil {
		return err
	}
	return m.updater.UpdateMaterializedView(ctx, m.conn, n, definition, sideBySide)
}
