// Order persistence.
//
// CreateOrder is the single write path of the application. The order row and
// its items commit atomically: the generated order id is read back from the
// order insert before any item insert proceeds, and every insert runs inside
// one transaction, so a mid-flight failure leaves no partial order behind.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// OrderLine is one validated (product, quantity) pair ready for persistence.
type OrderLine struct {
	ProductID int64
	Qty       int
}

// CreateOrder inserts one order row for tenantID plus one order_items row
// per line, all in a single transaction. It returns the generated order id.
// Failures are classified (ErrBusy, ErrSchemaMissing) before returning.
func CreateOrder(ctx context.Context, db *gorm.DB, tenantID int64, buyerTelegram string, lines []OrderLine) (int64, error) {
	var orderID int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o := &domain.Order{
			TenantID:      tenantID,
			BuyerTelegram: buyerTelegram,
			Status:        "NEW",
			CreatedAt:     time.Now().UTC(),
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		orderID = o.ID

		for _, line := range lines {
			item := &domain.OrderItem{
				OrderID:   orderID,
				ProductID: line.ProductID,
				Qty:       line.Qty,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, Classify(err)
	}
	return orderID, nil
}
