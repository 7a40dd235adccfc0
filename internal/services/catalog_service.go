// CatalogService: tenant catalog reads and configuration merge.
//
// This file implements the tenant-facing read side: the normalized product
// list and the merged configuration map. Both operations are unguarded
// simple reads; responses may trail concurrent writers slightly.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the tenant id.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
	"github.com/archivegarage/go-storefront-backend/internal/repo"
)

// PlaceholderImage is served when a product has no usable image URL.
const PlaceholderImage = "/placeholder.svg"

// ProductView is the normalized product shape returned by the public API.
// Name is upper-cased, the image list is parsed defensively, and PriceValue
// carries the derived digits-only price for client-side sorting.
type ProductView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	OriginalPrice string    `json:"originalPrice"`
	PriceValue    int       `json:"priceValue"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Size          string    `json:"size"`
	Condition     string    `json:"condition"`
	Image         string    `json:"image"`
	Images        []string  `json:"images"`
	Description   string    `json:"description"`
	Year          string    `json:"year"`
	Material      string    `json:"material"`
	Status        string    `json:"status"`
	IsFeatured    bool      `json:"is_featured"`
	LayoutIndex   int       `json:"layout_index"`
	Category      string    `json:"category"`
}

// CatalogService serves tenant-scoped catalog and configuration reads.
type CatalogService struct {
	DB *gorm.DB
}

// upperCaser upper-cases product names without locale-specific surprises.
var upperCaser = cases.Upper(language.Und)

// ListProducts returns every product owned by tenantID in normalized form,
// ordered newest first. Sold or archived items are included; filtering them
// is a presentation concern. The result is an empty slice, never nil.
func (s *CatalogService) ListProducts(ctx context.Context, tenantID int64) ([]ProductView, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "ListProducts",
		trace.WithAttributes(attribute.Int64("tenant.id", tenantID)),
	)
	defer span.End()

	rows, err := repo.ListProducts(ctx, s.DB, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]ProductView, 0, len(rows))
	for _, p := range rows {
		out = append(out, normalizeProduct(p))
	}
	return out, nil
}

// normalizeProduct maps a raw product row to its API shape.
func normalizeProduct(p domain.Product) ProductView {
	images := domain.ParseImages(p.Images)
	first := PlaceholderImage
	if len(images) > 0 && images[0] != "" {
		first = images[0]
	}

	name := "NO NAME"
	if p.Name != "" {
		name = upperCaser.String(p.Name)
	}

	return ProductView{
		ID:            p.ID,
		Name:          name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		PriceValue:    domain.PriceDigits(p.Price),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Size:          p.Size,
		Condition:     p.Condition,
		Image:         first,
		Images:        images,
		Description:   p.Description,
		Year:          p.Year,
		Material:      p.Material,
		Status:        p.Status,
		IsFeatured:    p.IsFeatured,
		LayoutIndex:   p.LayoutIndex,
		Category:      "",
	}
}

// GetConfig returns the tenant's settings merged with fallback values from
// the tenant row: project_name, link_direct and link_telegram fill in only
// when the corresponding setting key is absent.
//
// Unlike the product list, configuration retrieval distinguishes its
// failures: ErrTenantNotFound when the tenant does not exist and
// ErrTenantNotRegistered when it exists but is not live.
func (s *CatalogService) GetConfig(ctx context.Context, tenantID int64) (map[string]string, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "GetConfig",
		trace.WithAttributes(attribute.Int64("tenant.id", tenantID)),
	)
	defer span.End()

	t, err := repo.GetTenant(ctx, s.DB, tenantID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if !t.IsRegistered {
		return nil, ErrTenantNotRegistered
	}

	settings, err := repo.ListSettings(ctx, s.DB, tenantID)
	if err != nil {
		return nil, err
	}

	cfg := make(map[string]string, len(settings)+3)
	for _, st := range settings {
		cfg[st.Key] = st.Value
	}

	// Tenant-row defaults apply only for absent keys.
	if cfg["project_name"] == "" && t.ProjectName != "" {
		cfg["project_name"] = t.ProjectName
	}
	if cfg["link_direct"] == "" && t.LinkDirect != "" {
		cfg["link_direct"] = t.LinkDirect
	}
	if cfg["link_telegram"] == "" && t.LinkTelegram != "" {
		cfg["link_telegram"] = t.LinkTelegram
	}

	return cfg, nil
}
