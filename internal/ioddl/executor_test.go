package ioddl_test

import (
	"context"
	"testing"

	"github.com/gnames/gnview/internal/ioddl"
	"github.com/gnames/gnview/internal/iogate"
	"github.com/gnames/gnview/pkg/errcode"
	"github.com/gnames/gnview/pkg/view"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	modern = view.CapabilitiesForVersion(160002)
	legacy = view.CapabilitiesForVersion(90224)
)

func newMock(t *testing.T) pgxmock.PgxConnIface {
	t.Helper()
	mock, err := pgxmock.NewConn(
		pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual),
	)
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close(context.Background()) })
	return mock
}

func TestExecutor(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	name := view.MustParseName("people")

	mock.ExpectExec("CREATE VIEW \"people\" AS\nSELECT 1").
		WillReturnResult(pgxmock.NewResult("CREATE VIEW", 0))
	mock.ExpectExec("CREATE OR REPLACE VIEW \"people\" AS\nSELECT 2").
		WillReturnResult(pgxmock.NewResult("CREATE VIEW", 0))
	mock.ExpectExec(`DROP VIEW "people"`).
		WillReturnResult(pgxmock.NewResult("DROP VIEW", 0))
	mock.ExpectExec("CREATE MATERIALIZED VIEW \"people\" AS\nSELECT 1\nWITH NO DATA").
		WillReturnResult(pgxmock.NewResult("CREATE MATERIALIZED VIEW", 0))
	mock.ExpectExec(`ALTER MATERIALIZED VIEW "people" RENAME TO "humans"`).
		WillReturnResult(pgxmock.NewResult("ALTER MATERIALIZED VIEW", 0))
	mock.ExpectExec(`DROP MATERIALIZED VIEW "humans"`).
		WillReturnResult(pgxmock.NewResult("DROP MATERIALIZED VIEW", 0))

	ex := ioddl.New(iogate.NewFixed(modern))
	require.NoError(t, ex.CreateView(ctx, mock, name, "SELECT 1;"))
	require.NoError(t, ex.ReplaceView(ctx, mock, name, "SELECT 2;"))
	require.NoError(t, ex.DropView(ctx, mock, name))
	require.NoError(t, ex.CreateMaterializedView(ctx, mock, name, "SELECT 1", false))
	require.NoError(t, ex.RenameMaterializedView(ctx, mock, name, "humans"))
	require.NoError(t, ex.DropMaterializedView(ctx, mock, name.InSchema("humans")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutor_Unsupported(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	name := view.MustParseName("people")
	ex := ioddl.New(iogate.NewFixed(legacy))

	err := ex.CreateMaterializedView(ctx, mock, name, "SELECT 1", true)
	assert.Equal(t, errcode.ViewUnsupportedFeatureError, view.ErrorCode(err))

	err = ex.DropMaterializedView(ctx, mock, name)
	assert.Equal(t, errcode.ViewUnsupportedFeatureError, view.ErrorCode(err))

	err = ex.RenameMaterializedView(ctx, mock, name, "humans")
	assert.Equal(t, errcode.ViewUnsupportedFeatureError, view.ErrorCode(err))

	// no statement reached the connection
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutor_BackendError(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	pgErr := &pgconn.PgError{Code: "42P07", Message: `relation "people" already exists`}
	mock.ExpectExec("CREATE VIEW \"people\" AS\nSELECT 1").WillReturnError(pgErr)

	ex := ioddl.New(iogate.NewFixed(modern))
	err := ex.CreateView(ctx, mock, view.MustParseName("people"), "SELECT 1")
	assert.Same(t, pgErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
