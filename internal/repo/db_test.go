package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// newRepoDB opens a fresh temp-file SQLite database, optionally migrating
// the given models. Shared by the repo tests.
func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := OpenSQLite(path, Options{})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// All five tables must be queryable after migration.
	for _, m := range []any{&domain.Tenant{}, &domain.Setting{}, &domain.Product{}, &domain.Order{}, &domain.OrderItem{}} {
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			t.Fatalf("count %T after migrate: %v", m, err)
		}
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "store.db")
	if _, err := OpenSQLite(path, Options{}); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}

func TestEnsureOrderSchema_Idempotent(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	ctx := context.Background()

	if err := EnsureOrderSchema(ctx, db); err != nil {
		t.Fatalf("first EnsureOrderSchema: %v", err)
	}
	// Second run must be a no-op, not a failure.
	if err := EnsureOrderSchema(ctx, db); err != nil {
		t.Fatalf("second EnsureOrderSchema: %v", err)
	}

	// The created tables accept writes through the GORM models.
	id, err := CreateOrder(ctx, db, 7, "buyer", []OrderLine{{ProductID: 1, Qty: 2}})
	if err != nil {
		t.Fatalf("CreateOrder on ensured schema: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero order id")
	}
}
