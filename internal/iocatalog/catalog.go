// Package iocatalog implements lifecycle.Catalog on top of PostgreSQL
// system catalogs. Every call reads the live catalog.
package iocatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
	"github.com/jackc/pgx/v5"
)

// ViewsQuery lists views and materialized views on the search path.
// Objects that belong to extensions are skipped.
const ViewsQuery = `
SELECT n.nspname, c.relname, c.relkind = 'm', pg_get_viewdef(c.oid)
  FROM pg_class c
  JOIN pg_namespace n ON n.oid = c.relnamespace
  WHERE c.relkind IN ('v', 'm')
    AND n.nspname = ANY (current_schemas(false))
    AND NOT EXISTS (
      SELECT 1 FROM pg_depend d
        WHERE d.classid = 'pg_class'::regclass
          AND d.objid = c.oid
          AND d.deptype = 'e'
    )
  ORDER BY n.nspname, c.relname`

// LookupQuery finds a materialized view. With an empty schema ($2) the
// first match along the search path wins, the default schema is tried
// last.
const LookupQuery = `
SELECT n.nspname, c.relispopulated
  FROM pg_class c
  JOIN pg_namespace n ON n.oid = c.relnamespace
  WHERE c.relkind = 'm'
    AND c.relname = $1
    AND (($2::text = ''
          AND (n.nspname = ANY (current_schemas(false))
            OR n.nspname = 'public'))
      OR n.nspname = $2::text)
  ORDER BY array_position(current_schemas(false), n.nspname)
  LIMIT 1`

// UniqueIndexesQuery lists valid unique indexes of a relation ($1 is a
// quoted, possibly qualified, relation name).
const UniqueIndexesQuery = `
SELECT n.nspname, i.relname, t.relname,
       ix.indpred IS NOT NULL, ix.indexprs IS NOT NULL,
       ARRAY(
         SELECT a.attname::text
           FROM pg_attribute a
           WHERE a.attrelid = ix.indrelid
             AND a.attnum = ANY (ix.indkey)
             AND a.attnum > 0
           ORDER BY a.attname
       )
  FROM pg_index ix
  JOIN pg_class i ON i.oid = ix.indexrelid
  JOIN pg_class t ON t.oid = ix.indrelid
  JOIN pg_namespace n ON n.oid = t.relnamespace
  WHERE ix.indrelid = $1::regclass
    AND ix.indisunique
    AND ix.indisvalid
  ORDER BY i.relname`

type catalog struct {
	gate lifecycle.Gate
}

// New creates a Catalog. The gate guards operations that only make sense
// on servers with materialized views.
func New(gate lifecycle.Gate) lifecycle.Catalog {
	return &catalog{gate: gate}
}

// Views implements lifecycle.Catalog.
func (c *catalog) Views(
	ctx context.Context,
	conn db.Conn,
) ([]view.Descriptor, error) {
	rows, err := conn.Query(ctx, ViewsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []view.Descriptor
	for rows.Next() {
		var d view.Descriptor
		err = rows.Scan(
			&d.Name.Schema, &d.Name.Object, &d.Materialized, &d.Definition,
		)
		if err != nil {
			return nil, err
		}
		d.Definition = view.Normalize(d.Definition)
		res = append(res, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	// collation of the server might differ from byte order
	view.SortDescriptors(res)
	return res, nil
}

// IsPopulated implements lifecycle.Catalog.
func (c *catalog) IsPopulated(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) (bool, error) {
	_, populated, err := c.Lookup(ctx, conn, name)
	return populated, err
}

// Lookup implements lifecycle.Catalog.
func (c *catalog) Lookup(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) (view.Name, bool, error) {
	caps, err := c.gate.Capabilities(ctx, conn)
	if err != nil {
		return view.Name{}, false, err
	}
	if err = caps.Require(view.FeatureMaterializedViews); err != nil {
		return view.Name{}, false, err
	}

	name = name.StripDefault()
	res := name
	var populated bool
	err = conn.QueryRow(ctx, LookupQuery, name.Object, name.Schema).
		Scan(&res.Schema, &populated)
	if errors.Is(err, pgx.ErrNoRows) {
		return view.Name{}, false, view.ObjectNotFoundError(name)
	}
	if err != nil {
		return view.Name{}, false, err
	}

	slog.Debug("Resolved materialized view",
		"name", name.String(), "schema", res.Schema, "populated", populated)
	return res, populated, nil
}

// UniqueIndexes implements lifecycle.Catalog.
func (c *catalog) UniqueIndexes(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) ([]view.UniqueIndex, error) {
	rows, err := conn.Query(ctx, UniqueIndexesQuery, name.Sanitize())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []view.UniqueIndex
	for rows.Next() {
		var idx view.UniqueIndex
		var schema string
		err = rows.Scan(
			&schema, &idx.Name.Object, &idx.OnTable.Object,
			&idx.HasWhereClause, &idx.HasExpressions, &idx.Columns,
		)
		if err != nil {
			return nil, err
		}
		idx.Name.Schema = schema
		idx.OnTable.Schema = schema
		res = append(res, idx)
	}
	return res, rows.Err()
}

// RowCount implements lifecycle.Catalog.
func (c *catalog) RowCount(
	ctx context.Context,
	conn db.Conn,
	name view.Name,
) (int64, error) {
	var res int64
	q := fmt.Sprintf("SELECT count(*) FROM %s", name.Sanitize())
	if err := conn.QueryRow(ctx, q).Scan(&res); err != nil {
		return 0, err
	}
	return res, nil
}
