// Tenant lookups.
//
// All functions are context-aware, accept a *gorm.DB handle, and follow the
// thin-repository approach: no business logic, only query composition. A
// missing tenant is reported as ErrNotFound; callers must treat that as an
// authorization failure, never as "tenant zero".
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// FindTenantIDBySlug returns the id of the tenant whose site_slug equals
// slug exactly, or ErrNotFound.
func FindTenantIDBySlug(ctx context.Context, db *gorm.DB, slug string) (int64, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).
		Select("id").
		Where("site_slug = ?", slug).
		First(&t).Error
	if err != nil {
		return 0, Classify(err)
	}
	return t.ID, nil
}

// FindTenantIDBySubdomain returns the id of the tenant whose site_slug
// equals sub exactly OR ends with "/<sub>". The suffix form supports
// composite slugs ("2170/extndd") where subdomain routing only carries the
// trailing name component.
func FindTenantIDBySubdomain(ctx context.Context, db *gorm.DB, sub string) (int64, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).
		Select("id").
		Where("site_slug = ? OR site_slug LIKE ?", sub, "%/"+sub).
		First(&t).Error
	if err != nil {
		return 0, Classify(err)
	}
	return t.ID, nil
}

// GetTenant fetches a full tenant row by id, or ErrNotFound.
func GetTenant(ctx context.Context, db *gorm.DB, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, Classify(err)
	}
	return &t, nil
}
