// Package ioupdate implements lifecycle.Updater.
//
// In-place update drops and recreates the materialized view in one
// transaction. Side-by-side update builds the new version under a
// temporary name first, then swaps names in one short transaction. The
// build does not block readers of the old version, only the swap takes
// exclusive locks.
//
// Indexes of the old version are dropped together with it and have to be
// created again by the caller.
package ioupdate

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/gnames/gnuuid"
	"github.com/gnames/gnview/internal/ioddl"
	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
	"github.com/jackc/pgx/v5"
)

const maxIdentifierLen = 63

type updater struct {
	gate    lifecycle.Gate
	catalog lifecycle.Catalog
}

// New creates an Updater.
func New(gate lifecycle.Gate, catalog lifecycle.Catalog) lifecycle.Updater {
	return &updater{gate: gate, catalog: catalog}
}

// UpdateMaterializedView implements lifecycle.Updater.
func (u *updater) UpdateMaterializedView(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	definition string,
	sideBySide bool,
) error {
	caps, err := u.gate.Capabilities(ctx, conn)
	if err != nil {
		return err
	}
	if err = caps.Require(view.FeatureMaterializedViews); err != nil {
		return err
	}

	if sideBySide {
		return u.sideBySide(ctx, conn, name, definition)
	}
	return u.inPlace(ctx, conn, name, definition)
}

func (u *updater) inPlace(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	definition string,
) error {
	create, err := ioddl.CreateMaterializedView(name, definition, true)
	if err != nil {
		return err
	}

	slog.Info("Updating materialized view in place", "view", name.String())
	return inTx(ctx, conn, func(tx pgx.Tx) error {
		if err := ioddl.Exec(ctx, tx, ioddl.DropMaterializedView(name)); err != nil {
			return err
		}
		return ioddl.Exec(ctx, tx, create)
	})
}

func (u *updater) sideBySide(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
	definition string,
) error {
	target, _, err := u.catalog.Lookup(ctx, conn, name)
	if err != nil {
		return err
	}

	tmpName, oldName := SwapNames(target)
	tmp := target.InSchema(tmpName)
	old := target.InSchema(oldName)

	create, err := ioddl.CreateMaterializedView(tmp, definition, true)
	if err != nil {
		return err
	}

	// leftovers of an interrupted update
	err = ioddl.Exec(ctx, conn, ioddl.DropMaterializedViewIfExists(tmp))
	if err != nil {
		return err
	}

	slog.Info("Building new version of materialized view",
		"view", target.String(), "temporary", tmp.String())
	if err = ioddl.Exec(ctx, conn, create); err != nil {
		return err
	}

	err = inTx(ctx, conn, func(tx pgx.Tx) error {
		stmts := []string{
			ioddl.RenameMaterializedView(target, oldName),
			ioddl.RenameMaterializedView(tmp, target.Object),
			ioddl.DropMaterializedView(old),
		}
		for _, stmt := range stmts {
			if err := ioddl.Exec(ctx, tx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// the swap was rolled back, the new version is still under tmp
		cleanup := ioddl.DropMaterializedViewIfExists(tmp)
		if dropErr := ioddl.Exec(ctx, conn, cleanup); dropErr != nil {
			slog.Warn("Cannot drop temporary materialized view",
				"view", tmp.String(), "error", dropErr)
		}
		return err
	}

	slog.Warn("Indexes of the previous version were dropped",
		"view", target.String())
	slog.Info("Swapped in new version of materialized view",
		"view", target.String())
	return nil
}

// inTx runs fn in a transaction and commits it if fn succeeds.
func inTx(ctx context.Context, conn db.Conn, fn func(pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SwapNames returns the temporary name the new version is built under and
// the name the old version gets right before it is dropped. Both are
// stable for a given view, so an interrupted update can be cleaned up by
// the next one.
func SwapNames(name view.Name) (tmp, old string) {
	id := gnuuid.New(name.Schema + "." + name.Object).String()[:8]
	tmp = suffixed(name.Object, "_new_"+id)
	old = suffixed(name.Object, "_old_"+id)
	return tmp, old
}

func suffixed(object, suffix string) string {
	if len(object)+len(suffix) > maxIdentifierLen {
		object = object[:maxIdentifierLen-len(suffix)]
		for !utf8.ValidString(object) {
			object = object[:len(object)-1]
		}
	}
	return object + suffix
}
