// Package gnview manages views and materialized views of PostgreSQL
// databases.
package gnview

var (
	// Version of GNview, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
