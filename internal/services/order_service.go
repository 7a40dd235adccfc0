// OrderService: order validation and submission.
//
// This file implements the order submission pipeline, the one real state
// transition of the system. It normalizes the buyer contact, de-duplicates
// the requested product ids, fetches candidate products strictly within the
// order's tenant (the authorization boundary: foreign ids never match and
// are never revealed), floors quantities at 1, and persists the order with
// its items in a single transaction.
//
// Order creation is NOT idempotent: resubmitting the same payload records a
// second independent order. There is no client-supplied idempotency key;
// retries after a timeout can duplicate orders. Each attempt is atomic, so a
// retry never leaves a dangling order without items.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/archivegarage/go-storefront-backend/internal/repo"
)

// OrderItemRequest is one requested (product, quantity) pair from the
// client cart. Qty of zero or below means "default to 1".
type OrderItemRequest struct {
	ProductID int64
	Qty       int
}

// OrderService validates cart payloads and records orders.
type OrderService struct {
	DB *gorm.DB
}

// NormalizeBuyerContact trims the handle and strips a single leading "@" so
// contacts are stored consistently.
func NormalizeBuyerContact(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	return strings.TrimPrefix(v, "@")
}

// Create validates the requested items against tenantID's own catalog and
// persists the order atomically, returning the new order id.
//
// Validation pipeline:
//  1. buyerContact must be non-empty after normalization.
//  2. items must be non-empty; requested ids are de-duplicated and ids <= 0
//     dropped. An empty surviving set fails with ErrNoProductsSpecified.
//  3. Products are fetched scoped to tenantID only. Requested ids that did
//     not match (unknown, or owned by another tenant) are silently
//     discarded rather than rejecting the whole order.
//  4. Quantities are floored at 1. When no lines survive, ErrNoValidItems.
//  5. Order + items insert in one transaction; either all rows become
//     visible together or none do.
func (s *OrderService) Create(ctx context.Context, tenantID int64, buyerContact string, items []OrderItemRequest) (int64, error) {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("tenant.id", tenantID),
			attribute.Int("items.requested", len(items)),
		),
	)
	defer span.End()

	buyer := NormalizeBuyerContact(buyerContact)
	if buyer == "" {
		return 0, ErrBuyerContactRequired
	}
	if len(items) == 0 {
		return 0, ErrItemsRequired
	}

	// De-duplicate requested ids, dropping zero/negative.
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			continue
		}
		if _, dup := seen[it.ProductID]; dup {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	if len(ids) == 0 {
		return 0, ErrNoProductsSpecified
	}

	// Tenant-scoped fetch: ids owned by other tenants never match here.
	products, err := repo.ListProductsByIDs(ctx, s.DB, tenantID, ids)
	if err != nil {
		return 0, err
	}
	owned := make(map[int64]struct{}, len(products))
	for _, p := range products {
		owned[p.ID] = struct{}{}
	}

	// Build order lines, ignoring unknown/foreign ids.
	lines := make([]repo.OrderLine, 0, len(items))
	for _, it := range items {
		if _, ok := owned[it.ProductID]; !ok {
			continue
		}
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, repo.OrderLine{ProductID: it.ProductID, Qty: qty})
	}
	if len(lines) == 0 {
		return 0, ErrNoValidItems
	}

	orderID, err := repo.CreateOrder(ctx, s.DB, tenantID, buyer, lines)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(
		attribute.Int64("order.id", orderID),
		attribute.Int("items.accepted", len(lines)),
	)
	return orderID, nil
}
