package ioddl

import (
	"testing"

	"github.com/gnames/gnview/pkg/errcode"
	"github.com/gnames/gnview/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMaterializedView(t *testing.T) {
	tests := []struct {
		name      string
		view      string
		def       string
		populated bool
		want      string
		wantErr   bool
	}{
		{
			name:      "populated",
			view:      "people",
			def:       "SELECT * FROM family_members;",
			populated: true,
			want: "CREATE MATERIALIZED VIEW \"people\" AS\n" +
				"SELECT * FROM family_members",
		},
		{
			name: "no_data",
			view: "analytics.people",
			def:  "SELECT * FROM family_members;\n\n",
			want: "CREATE MATERIALIZED VIEW \"analytics\".\"people\" AS\n" +
				"SELECT * FROM family_members\nWITH NO DATA",
		},
		{
			name: "no_data_after_comment",
			view: "people",
			def:  "SELECT 1; SELECT 2 -- last one;",
			want: "CREATE MATERIALIZED VIEW \"people\" AS\n" +
				"SELECT 1; SELECT 2 -- last one\nWITH NO DATA",
		},
		{
			name:    "empty",
			view:    "people",
			def:     " ;\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateMaterializedView(
				view.MustParseName(tt.view), tt.def, tt.populated,
			)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errcode.ViewEmptyDefinitionError, view.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateView(t *testing.T) {
	got, err := CreateView(view.MustParseName(`"My View"`), "SELECT 1;")
	require.NoError(t, err)
	assert.Equal(t, "CREATE VIEW \"My View\" AS\nSELECT 1", got)

	got, err = ReplaceView(view.MustParseName("children"), "SELECT 2 ")
	require.NoError(t, err)
	assert.Equal(t, "CREATE OR REPLACE VIEW \"children\" AS\nSELECT 2", got)

	_, err = CreateView(view.MustParseName("children"), "")
	assert.Error(t, err)
}

func TestStatements(t *testing.T) {
	n := view.MustParseName("analytics.totals")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"drop_view", DropView(n), `DROP VIEW "analytics"."totals"`},
		{
			"drop_matview",
			DropMaterializedView(n),
			`DROP MATERIALIZED VIEW "analytics"."totals"`,
		},
		{
			"drop_matview_if_exists",
			DropMaterializedViewIfExists(n),
			`DROP MATERIALIZED VIEW IF EXISTS "analytics"."totals"`,
		},
		{
			"rename",
			RenameMaterializedView(n, "totals_old"),
			`ALTER MATERIALIZED VIEW "analytics"."totals" RENAME TO "totals_old"`,
		},
		{
			"refresh",
			RefreshMaterializedView(n, false),
			`REFRESH MATERIALIZED VIEW "analytics"."totals"`,
		},
		{
			"refresh_concurrently",
			RefreshMaterializedView(n, true),
			`REFRESH MATERIALIZED VIEW CONCURRENTLY "analytics"."totals"`,
		},
		{
			"quote_in_name",
			DropView(view.Name{Object: `a"b`}),
			`DROP VIEW "a""b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
