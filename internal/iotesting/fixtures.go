package iotesting

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FamilyMember is the base table views of integration tests read from.
type FamilyMember struct {
	ID       uint   `gorm:"primaryKey;autoIncrement:false"`
	Name     string `gorm:"type:varchar(100);not null"`
	Age      int    `gorm:"not null"`
	ParentID *uint
}

// TableName sets the table name explicitly.
func (FamilyMember) TableName() string {
	return "family_members"
}

// Household groups family members, it gives views a second base table.
type Household struct {
	ID       uint   `gorm:"primaryKey;autoIncrement:false"`
	MemberID uint   `gorm:"not null;index"`
	City     string `gorm:"type:varchar(100);not null"`
}

// TableName sets the table name explicitly.
func (Household) TableName() string {
	return "households"
}

// Fixtures creates base tables with GORM AutoMigrate and fills them with a
// small family. Views and materialized views left from previous runs are
// removed first, so every test starts from the same state.
//
// Cleanup drops the tables (and everything built on them) when the test
// finishes.
func Fixtures(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	ResetViews(t, pool)
	_, err := pool.Exec(ctx,
		"DROP TABLE IF EXISTS family_members, households CASCADE")
	if err != nil {
		t.Fatalf("Failed to drop fixture tables: %v", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		t.Fatalf("Failed to open GORM connection: %v", err)
	}

	if err = gormDB.AutoMigrate(&FamilyMember{}, &Household{}); err != nil {
		t.Fatalf("Failed to migrate fixture tables: %v", err)
	}

	one := uint(1)
	members := []FamilyMember{
		{ID: 1, Name: "Ada", Age: 62},
		{ID: 2, Name: "Ben", Age: 35, ParentID: &one},
		{ID: 3, Name: "Cleo", Age: 12, ParentID: &one},
		{ID: 4, Name: "Dan", Age: 8, ParentID: &one},
	}
	if err = gormDB.Create(&members).Error; err != nil {
		t.Fatalf("Failed to insert family members: %v", err)
	}

	households := []Household{
		{ID: 1, MemberID: 1, City: "Champaign"},
		{ID: 2, MemberID: 2, City: "Urbana"},
	}
	if err = gormDB.Create(&households).Error; err != nil {
		t.Fatalf("Failed to insert households: %v", err)
	}

	t.Cleanup(func() {
		ResetViews(t, pool)
		_, _ = pool.Exec(context.Background(),
			"DROP TABLE IF EXISTS family_members, households CASCADE")
	})
}

// ResetViews drops every view and materialized view of the public schema.
func ResetViews(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	q := `
SELECT c.relname, c.relkind
  FROM pg_class c
  JOIN pg_namespace n ON n.oid = c.relnamespace
  WHERE n.nspname = 'public' AND c.relkind IN ('v', 'm')`

	rows, err := pool.Query(ctx, q)
	if err != nil {
		t.Fatalf("Failed to list views: %v", err)
	}
	type obj struct {
		name string
		kind string
	}
	var objs []obj
	for rows.Next() {
		var o obj
		if err = rows.Scan(&o.name, &o.kind); err != nil {
			rows.Close()
			t.Fatalf("Failed to scan view: %v", err)
		}
		objs = append(objs, o)
	}
	rows.Close()

	for _, o := range objs {
		kind := "VIEW"
		if o.kind == "m" {
			kind = "MATERIALIZED VIEW"
		}
		name := pgx.Identifier{"public", o.name}.Sanitize()
		stmt := "DROP " + kind + " IF EXISTS " + name + " CASCADE"
		if _, err = pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("Failed to drop %s: %v", o.name, err)
		}
	}
}
