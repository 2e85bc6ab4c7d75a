package db_test

import (
	"testing"

	"github.com/gnames/gnview/internal/iodb"
	"github.com/gnames/gnview/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

// TestOperatorInterface verifies that the pgx operator implements
// db.Operator.
func TestOperatorInterface(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.NotNil(t, op)
	assert.Nil(t, op.Conn(), "Conn should be nil before Connect")
}

// TestConnInterface verifies the handles accepted by view lifecycle
// components.
func TestConnInterface(t *testing.T) {
	var _ db.Conn = (*pgxpool.Pool)(nil)
	var _ db.Conn = (*pgxpool.Conn)(nil)
	var _ db.Conn = (*pgx.Conn)(nil)
	var _ db.Conn = (pgx.Tx)(nil)

	mock, err := pgxmock.NewConn()
	assert.NoError(t, err)
	var conn db.Conn = mock
	assert.NotNil(t, conn)
}
