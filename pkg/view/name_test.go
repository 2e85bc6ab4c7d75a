package view_test

import (
	"testing"

	"github.com/gnames/gnview/pkg/errcode"
	"github.com/gnames/gnview/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		msg, input string
		schema     string
		object     string
	}{
		{"plain", "people", "", "people"},
		{"qualified", "reporting.people", "reporting", "people"},
		{"folds case", "Reporting.People", "reporting", "people"},
		{"trims", "  people  ", "", "people"},
		{"quoted", `"My View"`, "", "My View"},
		{"quoted schema", `"Sales"."Q1 totals"`, "Sales", "Q1 totals"},
		{"quoted dot", `"a.b"`, "", "a.b"},
		{"escaped quote", `"say ""hi"""`, "", `say "hi"`},
		{"mixed", `public."People"`, "public", "People"},
	}

	for _, v := range tests {
		res, err := view.ParseName(v.input)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.schema, res.Schema, v.msg)
		assert.Equal(t, v.object, res.Object, v.msg)
	}
}

func TestParseNameErrors(t *testing.T) {
	tests := []struct {
		msg, input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too many parts", "db.schema.view"},
		{"trailing dot", "schema."},
		{"leading dot", ".view"},
		{"space inside", "my view"},
		{"open quote", `"people`},
		{"text after quote", `"people"x`},
		{"quote inside", `peo"ple"`},
		{"too long", "a123456789012345678901234567890123456789012345678901234567890123"},
	}

	for _, v := range tests {
		_, err := view.ParseName(v.input)
		require.Error(t, err, v.msg)
		assert.Equal(t, errcode.ViewInvalidNameError, view.ErrorCode(err), v.msg)
	}
}

func TestNameString(t *testing.T) {
	tests := []struct {
		msg  string
		name view.Name
		str  string
		sql  string
	}{
		{
			msg:  "default schema is not shown",
			name: view.Name{Schema: "public", Object: "people"},
			str:  "people",
			sql:  `"public"."people"`,
		},
		{
			msg:  "no schema",
			name: view.Name{Object: "people"},
			str:  "people",
			sql:  `"people"`,
		},
		{
			msg:  "other schema",
			name: view.Name{Schema: "reporting", Object: "people"},
			str:  "reporting.people",
			sql:  `"reporting"."people"`,
		},
		{
			msg:  "quote is escaped",
			name: view.Name{Object: `a"b`},
			str:  `a"b`,
			sql:  `"a""b"`,
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.str, v.name.String(), v.msg)
		assert.Equal(t, v.sql, v.name.Sanitize(), v.msg)
	}
}

func TestStripDefault(t *testing.T) {
	n := view.MustParseName("public.people").StripDefault()
	assert.Equal(t, view.Name{Object: "people"}, n)

	n = view.MustParseName("reporting.people").StripDefault()
	assert.Equal(t, "reporting", n.Schema)
}

func TestNameCompare(t *testing.T) {
	a := view.Name{Schema: "public", Object: "people"}
	b := view.Name{Schema: "public", Object: "people_with_names"}
	c := view.Name{Schema: "reporting", Object: "children"}

	assert.Negative(t, a.Compare(b))
	assert.Negative(t, b.Compare(c))
	assert.Positive(t, c.Compare(a))
	assert.Zero(t, a.Compare(a))
}

func TestNameMarshalText(t *testing.T) {
	txt, err := view.Name{Schema: "reporting", Object: "people"}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "reporting.people", string(txt))
}
