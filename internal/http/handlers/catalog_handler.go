// Catalog HTTP handlers.
//
// This file exposes the tenant-scoped read endpoints:
//   - GET /api/config    (merged configuration map)
//   - GET /api/products  (normalized product list, ETag support)
//
// Handlers are transport-thin: they resolve the tenant from the request,
// call application services, and translate results into HTTP responses.
//
// The two endpoints fail differently on purpose: /api/config returns 404
// with a code when the tenant cannot be resolved, while /api/products
// returns 200 with an empty array so that its error behavior leaks no
// tenant-existence information.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/archivegarage/go-storefront-backend/internal/repo"
	"github.com/archivegarage/go-storefront-backend/internal/services"
	"github.com/archivegarage/go-storefront-backend/internal/tenant"
)

//
// Service contracts (context-aware)
//

// CatalogService defines the catalog read operations consumed by HTTP
// handlers. Implementations must honor the provided context.
type CatalogService interface {
	// ListProducts returns the normalized product list for a tenant.
	ListProducts(ctx context.Context, tenantID int64) ([]services.ProductView, error)
	// GetConfig returns the merged configuration map for a tenant.
	GetConfig(ctx context.Context, tenantID int64) (map[string]string, error)
}

// OrderService defines order submission as consumed by HTTP handlers.
type OrderService interface {
	// Create validates and atomically records an order, returning its id.
	Create(ctx context.Context, tenantID int64, buyerContact string, items []services.OrderItemRequest) (int64, error)
}

// TenantResolver maps a request's slug parameter and host to a tenant id.
type TenantResolver interface {
	Resolve(ctx context.Context, slugParam, host string) (int64, error)
}

//
// Handler wiring
//

// Handlers groups the public storefront endpoints. It depends on abstract
// service interfaces to keep transport concerns separate from business
// logic.
type Handlers struct {
	resolver   TenantResolver
	catalogSvc CatalogService
	orderSvc   OrderService

	// db is used for best-effort extras (ETag stats, on-demand order
	// schema creation); handlers degrade gracefully when it is nil.
	db *gorm.DB
}

// New constructs a Handlers instance bound to the given collaborators.
func New(resolver TenantResolver, catalogSvc CatalogService, orderSvc OrderService, db *gorm.DB) *Handlers {
	return &Handlers{resolver: resolver, catalogSvc: catalogSvc, orderSvc: orderSvc, db: db}
}

// resolveTenant runs tenant resolution for the current request. The slug
// query parameter takes precedence over the Host header subdomain.
func (h *Handlers) resolveTenant(c *gin.Context) (int64, error) {
	return h.resolver.Resolve(c.Request.Context(), c.Query("slug"), c.Request.Host)
}

//
// Handlers
//

// GetConfig godoc
// @ID          getConfig
// @Summary     Tenant configuration
// @Description Returns the tenant's settings merged with tenant-row defaults as a flat string map.
// @Tags        Catalog
// @Produce     json
//
// @Param       slug  query  string  false  "Tenant slug (overrides subdomain resolution)"  example(2170/extndd)
//
// @Success     200  {object}  map[string]string
// @Failure     404  {object}  handlers.ErrorResponse  "catalog_not_found or catalog_not_registered"
// @Failure     500  {object}  handlers.ErrorResponse  "server_error"
// @Router      /api/config [get]
func (h *Handlers) GetConfig(c *gin.Context) {
	tenantID, err := h.resolveTenant(c)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenant) {
			fail(c, http.StatusNotFound, ErrCodeCatalogNotFound)
			return
		}
		failServer(c, ErrCodeServerError, err)
		return
	}

	cfg, err := h.catalogSvc.GetConfig(c.Request.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			fail(c, http.StatusNotFound, ErrCodeCatalogNotFound)
		case errors.Is(err, services.ErrTenantNotRegistered):
			fail(c, http.StatusNotFound, ErrCodeCatalogNotRegistered)
		default:
			failServer(c, ErrCodeServerError, err)
		}
		return
	}
	ok(c, http.StatusOK, cfg)
}

// ListProducts godoc
// @ID          listProducts
// @Summary     Tenant product list
// @Description Returns all of the tenant's products, newest first. An unresolvable tenant yields an empty array, not an error. Supports weak ETag via If-None-Match.
// @Tags        Catalog
// @Produce     json
//
// @Param       slug           query   string  false  "Tenant slug (overrides subdomain resolution)"
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {array}   services.ProductView
// @Header      200  {string}  ETag  "Weak ETag for the current catalog"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "server_error"
// @Router      /api/products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, err := h.resolveTenant(c)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenant) {
			// Deliberate asymmetry with /api/config: an empty list hides
			// whether the tenant exists at all.
			ok(c, http.StatusOK, []services.ProductView{})
			return
		}
		failServer(c, ErrCodeServerError, err)
		return
	}

	// ETag pre-check (best effort).
	if h.db != nil {
		count, maxTS, serr := repo.ProductsStats(ctx, h.db, tenantID)
		if serr == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"products:%d:%d:%d"`, tenantID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	products, err := h.catalogSvc.ListProducts(ctx, tenantID)
	if err != nil {
		failServer(c, ErrCodeServerError, err)
		return
	}
	ok(c, http.StatusOK, products)
}
