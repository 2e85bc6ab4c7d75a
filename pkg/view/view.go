// Package view contains the value types shared by the view lifecycle
// components: qualified names, catalog snapshots, capabilities, refresh
// requests and the dependency graph. The package is pure, it never talks
// to the database.
package view

import (
	"slices"
)

// Descriptor is a catalog snapshot of one view or materialized view.
// A changed definition is represented by a new Descriptor.
type Descriptor struct {
	// Name is resolved; its Schema is always set.
	Name Name `json:"name"`

	// Materialized is true for materialized views.
	Materialized bool `json:"materialized"`

	// Definition is the normalized query text of the view.
	Definition string `json:"definition"`
}

// Feature is a backend capability an operation may depend on.
type Feature string

const (
	// FeatureMaterializedViews is support for materialized views
	// (PostgreSQL 9.3+).
	FeatureMaterializedViews Feature = "materialized views"

	// FeatureConcurrentRefresh is support for
	// REFRESH MATERIALIZED VIEW CONCURRENTLY (PostgreSQL 9.4+).
	FeatureConcurrentRefresh Feature = "concurrent refresh"
)

// Capabilities describes what the connected backend supports. It is
// computed once per session and does not change afterwards.
type Capabilities struct {
	MaterializedViews bool
	ConcurrentRefresh bool

	// ServerVersion is the numeric server version (e.g. 160002), zero when
	// the capabilities were injected.
	ServerVersion int
}

// CapabilitiesForVersion maps a numeric PostgreSQL version to capabilities.
func CapabilitiesForVersion(version int) Capabilities {
	return Capabilities{
		MaterializedViews: version >= 90300,
		ConcurrentRefresh: version >= 90400,
		ServerVersion:     version,
	}
}

// Supports reports whether the feature is available.
func (c Capabilities) Supports(f Feature) bool {
	switch f {
	case FeatureMaterializedViews:
		return c.MaterializedViews
	case FeatureConcurrentRefresh:
		return c.MaterializedViews && c.ConcurrentRefresh
	default:
		return false
	}
}

// Require returns UnsupportedFeature error if any of the features is
// missing.
func (c Capabilities) Require(features ...Feature) error {
	for _, f := range features {
		if !c.Supports(f) {
			return UnsupportedFeatureError(f, c.ServerVersion)
		}
	}
	return nil
}

// RefreshRequest describes one refresh call.
type RefreshRequest struct {
	Target Name

	// Cascade refreshes materialized views the target depends on first.
	Cascade bool

	// Concurrently asks for REFRESH ... CONCURRENTLY, keeping the view
	// readable during the refresh.
	Concurrently bool
}

// Node is a vertex of the dependency graph between views. Plain views are
// part of the graph so dependencies that go through them are followed.
type Node struct {
	Object       Name
	Materialized bool

	// DependsOn lists views and materialized views Object reads from.
	DependsOn []Name
}

// UniqueIndex describes a unique index of a relation.
type UniqueIndex struct {
	Name    Name
	OnTable Name

	// Columns are sorted column names covered by the index.
	Columns []string

	// HasWhereClause is true for partial indexes.
	HasWhereClause bool

	// HasExpressions is true when the index covers expressions rather than
	// plain columns.
	HasExpressions bool
}

// Eligible reports whether the index allows a concurrent refresh.
func (u UniqueIndex) Eligible() bool {
	return !u.HasWhereClause && !u.HasExpressions
}

// HasEligibleIndex reports whether any of the indexes allows a concurrent
// refresh.
func HasEligibleIndex(indexes []UniqueIndex) bool {
	return slices.ContainsFunc(indexes, UniqueIndex.Eligible)
}

// SortDescriptors orders descriptors by (schema, name).
func SortDescriptors(dd []Descriptor) {
	slices.SortStableFunc(dd, func(a, b Descriptor) int {
		return a.Name.Compare(b.Name)
	})
}
