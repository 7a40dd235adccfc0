// Product queries.
//
// Every query here is tenant-scoped: product rows are only reachable through
// their owning tenant's id, so a foreign product id simply never matches.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// ListProducts returns all products owned by tenantID, newest first with a
// stable id tie-break for equal timestamps. Status filtering (SOLD, ARCHIVE)
// is a presentation concern and is deliberately not applied here.
func ListProducts(ctx context.Context, db *gorm.DB, tenantID int64) ([]domain.Product, error) {
	var out []domain.Product
	err := db.WithContext(ctx).
		Where("user_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, Classify(err)
}

// ListProductsByIDs fetches the products among ids that belong to tenantID.
// Ids owned by other tenants silently fail to match; this query is the
// authorization boundary for order creation.
func ListProductsByIDs(ctx context.Context, db *gorm.DB, tenantID int64, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	var out []domain.Product
	err := db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", tenantID, ids).
		Find(&out).Error
	return out, Classify(err)
}

// ProductsStats returns aggregate metadata for a tenant's catalog: the total
// row count and the greatest UpdatedAt among those rows. Used for weak ETag
// generation on the product list endpoint. When the tenant has no products,
// count is 0 and maxUpdatedAt is nil.
func ProductsStats(ctx context.Context, db *gorm.DB, tenantID int64) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Product{}).Where("user_id = ?", tenantID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, Classify(err)
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, Classify(err)
	}
	return count, &row.UpdatedAt, nil
}
