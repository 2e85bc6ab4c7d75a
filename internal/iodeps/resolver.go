// Package iodeps implements lifecycle.Resolver. Dependencies between views
// are read from pg_depend through the rewrite rules that define each view.
package iodeps

import (
	"context"
	"log/slog"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
)

// GraphQuery returns one row per edge between a view (or a materialized
// view) and a view or materialized view it reads from.
const GraphQuery = `
SELECT DISTINCT
       dn.nspname, dc.relname, dc.relkind = 'm',
       rn.nspname, rc.relname, rc.relkind = 'm'
  FROM pg_depend d
  JOIN pg_rewrite r ON r.oid = d.objid
  JOIN pg_class dc ON dc.oid = r.ev_class
  JOIN pg_namespace dn ON dn.oid = dc.relnamespace
  JOIN pg_class rc ON rc.oid = d.refobjid
  JOIN pg_namespace rn ON rn.oid = rc.relnamespace
  WHERE d.classid = 'pg_rewrite'::regclass
    AND d.refclassid = 'pg_class'::regclass
    AND d.deptype = 'n'
    AND dc.relkind IN ('v', 'm')
    AND rc.relkind IN ('v', 'm')
    AND rc.oid <> dc.oid
  ORDER BY 1, 2, 4, 5`

type resolver struct{}

// New creates a Resolver.
func New() lifecycle.Resolver {
	return resolver{}
}

// Graph implements lifecycle.Resolver.
func (resolver) Graph(ctx context.Context, conn db.Conn) ([]view.Node, error) {
	rows, err := conn.Query(ctx, GraphQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []view.Name
	nodes := make(map[view.Name]*view.Node)
	add := func(n view.Name, materialized bool) *view.Node {
		if node, ok := nodes[n]; ok {
			return node
		}
		node := &view.Node{Object: n, Materialized: materialized}
		nodes[n] = node
		order = append(order, n)
		return node
	}

	for rows.Next() {
		var from, to view.Name
		var fromMat, toMat bool
		err = rows.Scan(
			&from.Schema, &from.Object, &fromMat,
			&to.Schema, &to.Object, &toMat,
		)
		if err != nil {
			return nil, err
		}
		node := add(from, fromMat)
		node.DependsOn = append(node.DependsOn, to)
		add(to, toMat)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	res := make([]view.Node, len(order))
	for i, v := range order {
		res[i] = *nodes[v]
	}
	return res, nil
}

// DependenciesOf implements lifecycle.Resolver.
func (r resolver) DependenciesOf(
	ctx context.Context,
	conn db.Conn,
	target view.Name,
) ([]view.Name, error) {
	if target.Schema == "" {
		target.Schema = view.DefaultSchema
	}

	nodes, err := r.Graph(ctx, conn)
	if err != nil {
		return nil, err
	}

	res, err := view.RefreshOrder(nodes, target)
	if err != nil {
		return nil, err
	}

	slog.Debug("Resolved dependencies",
		"target", target.String(), "count", len(res))
	return res, nil
}
