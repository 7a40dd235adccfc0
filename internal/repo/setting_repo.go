// Per-tenant settings.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// ListSettings returns all settings scoped to tenantID. The result is an
// empty slice (not an error) for a tenant without settings.
func ListSettings(ctx context.Context, db *gorm.DB, tenantID int64) ([]domain.Setting, error) {
	var out []domain.Setting
	err := db.WithContext(ctx).
		Where("user_id = ?", tenantID).
		Find(&out).Error
	return out, Classify(err)
}
