// Package ioddl implements lifecycle.Executor. Statements are built by
// pure functions of this package and issued on the connection given with
// each call.
package ioddl

import (
	"context"
	"log/slog"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
)

type executor struct {
	gate lifecycle.Gate
}

// New creates an Executor. Materialized view operations consult the gate
// before they issue anything.
func New(gate lifecycle.Gate) lifecycle.Executor {
	return &executor{gate: gate}
}

// CreateView implements lifecycle.Executor.
func (e *executor) CreateView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	definition string,
) error {
	stmt, err := CreateView(name, definition)
	if err != nil {
		return err
	}
	return Exec(ctx, conn, stmt)
}

// CreateMaterializedView implements lifecycle.Executor.
func (e *executor) CreateMaterializedView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	definition string,
	populated bool,
) error {
	if err := e.requireMatViews(ctx, conn); err != nil {
		return err
	}
	stmt, err := CreateMaterializedView(name, definition, populated)
	if err != nil {
		return err
	}
	return Exec(ctx, conn, stmt)
}

// ReplaceView implements lifecycle.Executor.
func (e *executor) ReplaceView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	definition string,
) error {
	stmt, err := ReplaceView(name, definition)
	if err != nil {
		return err
	}
	return Exec(ctx, conn, stmt)
}

// DropView implements lifecycle.Executor.
func (e *executor) DropView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) error {
	return Exec(ctx, conn, DropView(name))
}

// DropMaterializedView implements lifecycle.Executor.
func (e *executor) DropMaterializedView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) error {
	if err := e.requireMatViews(ctx, conn); err != nil {
		return err
	}
	return Exec(ctx, conn, DropMaterializedView(name))
}

// RenameMaterializedView implements lifecycle.Executor.
func (e *executor) RenameMaterializedView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	newName string,
) error {
	if err := e.requireMatViews(ctx, conn); err != nil {
		return err
	}
	if newName == "" {
		return view.InvalidNameError(newName)
	}
	return Exec(ctx, conn, RenameMaterializedView(name, newName))
}

func (e *executor) requireMatViews(ctx context.Context, conn db.Conn) error {
	caps, err := e.gate.Capabilities(ctx, conn)
	if err != nil {
		return err
	}
	return caps.Require(view.FeatureMaterializedViews)
}

// Exec issues one statement. Backend errors are returned as they are.
func Exec(ctx context.Context, conn db.Conn, stmt string) error {
	slog.Debug("Executing statement", "sql", stmt)
	_, err := conn.Exec(ctx, stmt)
	return err
}
