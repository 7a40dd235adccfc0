package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

func newServiceDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("service_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
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

func TestListProducts_Normalization(t *testing.T) {
	db := newServiceDB(t, &domain.Product{})
	svc := &CatalogService{DB: db}
	ctx := context.Background()

	rows := []domain.Product{
		{
			TenantID: 1,
			Name:     "rick owens bomber",
			Price:    "68 000 ₽",
			Images:   `["a.jpg","b.jpg"]`,
		},
		{
			TenantID: 1,
			Name:     "",
			Price:    "no price",
			Images:   `not json`,
		},
	}
	for i := range rows {
		rows[i].CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := svc.ListProducts(ctx, 1)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}

	// Newest first: the second seeded row comes back first.
	broken, named := got[0], got[1]

	if named.Name != "RICK OWENS BOMBER" {
		t.Fatalf("name not upper-cased: %q", named.Name)
	}
	if named.PriceValue != 68000 {
		t.Fatalf("PriceValue = %d, want 68000", named.PriceValue)
	}
	if named.Image != "a.jpg" || len(named.Images) != 2 {
		t.Fatalf("image normalization: %+v", named)
	}

	if broken.Name != "NO NAME" {
		t.Fatalf("empty name fallback: %q", broken.Name)
	}
	if broken.PriceValue != 0 {
		t.Fatalf("digit-free price should derive 0, got %d", broken.PriceValue)
	}
	if broken.Image != PlaceholderImage {
		t.Fatalf("placeholder fallback: %q", broken.Image)
	}
	if broken.Images == nil || len(broken.Images) != 0 {
		t.Fatalf("malformed images should parse to empty slice: %#v", broken.Images)
	}
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	db := newServiceDB(t, &domain.Product{})
	svc := &CatalogService{DB: db}

	got, err := svc.ListProducts(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestGetConfig_MergeAndDefaults(t *testing.T) {
	db := newServiceDB(t, &domain.Tenant{}, &domain.Setting{})
	svc := &CatalogService{DB: db}
	ctx := context.Background()

	tn := domain.Tenant{
		SiteSlug:     "2170/extndd",
		ProjectName:  "ROW DEFAULT",
		LinkDirect:   "https://direct.example",
		LinkTelegram: "https://t.me/row",
		IsRegistered: true,
	}
	if err := db.Create(&tn).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	for _, s := range []domain.Setting{
		{TenantID: tn.ID, Key: "project_name", Value: "SETTING WINS"},
		{TenantID: tn.ID, Key: "accent_color", Value: "#0f0"},
	} {
		if err := db.Create(&s).Error; err != nil {
			t.Fatalf("seed setting: %v", err)
		}
	}

	cfg, err := svc.GetConfig(ctx, tn.ID)
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}

	// Setting overrides the tenant-row value.
	if cfg["project_name"] != "SETTING WINS" {
		t.Fatalf("project_name = %q", cfg["project_name"])
	}
	// Row defaults fill only absent keys.
	if cfg["link_direct"] != "https://direct.example" {
		t.Fatalf("link_direct = %q", cfg["link_direct"])
	}
	if cfg["link_telegram"] != "https://t.me/row" {
		t.Fatalf("link_telegram = %q", cfg["link_telegram"])
	}
	// Plain settings pass through.
	if cfg["accent_color"] != "#0f0" {
		t.Fatalf("accent_color = %q", cfg["accent_color"])
	}
}

func TestGetConfig_TenantStates(t *testing.T) {
	db := newServiceDB(t, &domain.Tenant{}, &domain.Setting{})
	svc := &CatalogService{DB: db}
	ctx := context.Background()

	unregistered := domain.Tenant{SiteSlug: "dormant", IsRegistered: false}
	if err := db.Create(&unregistered).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.GetConfig(ctx, unregistered.ID+100); !errors.Is(err, ErrTenantNotFound) {
		t.Fatalf("missing tenant: got %v, want ErrTenantNotFound", err)
	}
	if _, err := svc.GetConfig(ctx, unregistered.ID); !errors.Is(err, ErrTenantNotRegistered) {
		t.Fatalf("unregistered tenant: got %v, want ErrTenantNotRegistered", err)
	}
}
