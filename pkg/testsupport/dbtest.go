package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-cms-medium/internal/resources"
)

var memoryDBSeq atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory SQLite database. Each call gets
// its own named database so parallel tests do not share tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:medium_test_%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewResourceDB returns a bun handle over a fresh in-memory SQLite database
// with the resources table created and seed inserted as given. The database
// is closed when the test ends.
func NewResourceDB(t testing.TB, seed ...*resources.Resource) *bun.DB {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	if err := resources.CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, record := range seed {
		if record == nil {
			continue
		}
		if _, err := db.NewInsert().Model(record.Clone()).Exec(ctx); err != nil {
			t.Fatalf("seed resource %d: %v", record.ID, err)
		}
	}
	return db
}
