// Order HTTP handler.
//
// This file exposes the order submission endpoint:
//   - POST /api/orders  (validate cart payload, record order atomically)
//
// The request body is shape-checked into a typed payload up front; loose
// client values (fractional, missing, or non-numeric quantities) are
// normalized once here instead of coerced ad hoc downstream. Validation and
// ownership failures come back as specific stable codes; storage failures
// are branched on the repo layer's typed sentinels.
//
// Order creation is not idempotent: a client retry after a timeout can
// record a duplicate order. Each attempt is atomic, so no retry ever leaves
// an order without items.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/archivegarage/go-storefront-backend/internal/http/middleware"
	"github.com/archivegarage/go-storefront-backend/internal/repo"
	"github.com/archivegarage/go-storefront-backend/internal/services"
	"github.com/archivegarage/go-storefront-backend/internal/tenant"
)

//
// DTOs
//

// FlexInt is an integer that tolerates the loose JSON shapes browser carts
// emit: numbers (fractions truncate), numeric strings, and anything else
// (including null) collapsing to zero. Zero is handled by the validation
// pipeline: a zero product id is dropped and a zero quantity floors to 1.
type FlexInt int64

// UnmarshalJSON implements lenient decoding for FlexInt.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int64(v))
	} else {
		*f = 0
	}
	return nil
}

// OrderItemPayload is one requested cart line.
type OrderItemPayload struct {
	ProductID FlexInt `json:"productId"`
	Qty       FlexInt `json:"qty"`
}

// CreateOrderRequest is the JSON payload for submitting an order.
type CreateOrderRequest struct {
	// BuyerTelegram is the buyer's contact handle; a leading "@" is stripped.
	BuyerTelegram string `json:"buyerTelegram" example:"@collector"`
	// Items is the cart content: at least one (productId, qty) pair.
	Items []OrderItemPayload `json:"items"`
}

// CreateOrderResponse is returned on successful order creation.
type CreateOrderResponse struct {
	OK      bool  `json:"ok"`
	OrderID int64 `json:"orderId"`
}

//
// Handler
//

// CreateOrder godoc
// @ID          createOrder
// @Summary     Submit an order
// @Description Validates the cart against the tenant's own catalog and records the order with its items atomically. Product ids belonging to other tenants are silently dropped.
// @Tags        Orders
// @Accept      json
// @Produce     json
//
// @Param       slug  query  string  false  "Tenant slug (overrides subdomain resolution)"
// @Param       body  body   handlers.CreateOrderRequest  true  "Order payload"
//
// @Success     200  {object}  handlers.CreateOrderResponse
// @Failure     400  {object}  handlers.ErrorResponse  "bad_request, buyer_telegram_required, items_required, no_products_specified or no_valid_items"
// @Failure     404  {object}  handlers.ErrorResponse  "catalog_not_found"
// @Failure     500  {object}  handlers.ErrorResponse  "db_locked, db_schema_missing or server_error"
// @Router      /api/orders [post]
func (h *Handlers) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	// The shared database may predate the order tables; creating them here
	// is idempotent and cheap, and makes db_schema_missing self-healing on
	// the next attempt.
	if h.db != nil {
		if err := repo.EnsureOrderSchema(ctx, h.db); err != nil {
			h.failStorage(c, err)
			return
		}
	}

	tenantID, err := h.resolveTenant(c)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenant) {
			fail(c, http.StatusNotFound, ErrCodeCatalogNotFound)
			return
		}
		h.failStorage(c, err)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest)
		return
	}

	items := make([]services.OrderItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.OrderItemRequest{
			ProductID: int64(it.ProductID),
			Qty:       int(it.Qty),
		})
	}

	orderID, err := h.orderSvc.Create(ctx, tenantID, req.BuyerTelegram, items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBuyerContactRequired):
			fail(c, http.StatusBadRequest, ErrCodeBuyerTelegramRequired)
		case errors.Is(err, services.ErrItemsRequired):
			fail(c, http.StatusBadRequest, ErrCodeItemsRequired)
		case errors.Is(err, services.ErrNoProductsSpecified):
			fail(c, http.StatusBadRequest, ErrCodeNoProductsSpecified)
		case errors.Is(err, services.ErrNoValidItems):
			fail(c, http.StatusBadRequest, ErrCodeNoValidItems)
		default:
			h.failStorage(c, err)
		}
		return
	}

	middleware.CountOrderCreated()
	ok(c, http.StatusOK, CreateOrderResponse{OK: true, OrderID: orderID})
}

// failStorage maps typed storage sentinels onto their stable 5xx codes.
func (h *Handlers) failStorage(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrBusy):
		failServer(c, ErrCodeDBLocked, err)
	case errors.Is(err, repo.ErrSchemaMissing):
		failServer(c, ErrCodeDBSchemaMissing, err)
	default:
		failServer(c, ErrCodeServerError, err)
	}
}
