// Package tenant resolves inbound requests to a storefront tenant.
//
// Resolution is a pure read with strict precedence: an explicit ?slug=
// query parameter wins outright; otherwise the host subdomain is tried,
// matching composite slugs ("2170/extndd") by their trailing name component.
// There is no default tenant and a bare numeric tenant id is never accepted
// from client input, since that would let anyone enumerate other tenants'
// private catalogs.
package tenant

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/archivegarage/go-storefront-backend/internal/repo"
)

// ErrNoTenant is returned when a request cannot be mapped to any tenant.
// Consumers must treat it as an authorization failure (respond not-found),
// never as an empty "tenant zero".
var ErrNoTenant = errors.New("no tenant resolved")

// Resolver maps (slug query parameter, host header) pairs to tenant ids.
type Resolver struct {
	DB *gorm.DB
}

// NewResolver constructs a Resolver bound to the given database handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// Resolve derives a tenant id from the request's slug parameter and host
// header, in that strict order. A present slug parameter that matches a
// tenant returns immediately; it never falls through to subdomain matching.
// Failure yields ErrNoTenant. Storage failures other than "not found" are
// passed through (classified by the repo layer).
func (r *Resolver) Resolve(ctx context.Context, slugParam, host string) (int64, error) {
	if slugParam != "" {
		id, err := repo.FindTenantIDBySlug(ctx, r.DB, slugParam)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return 0, err
		}
		// An explicit bad slug still falls through to subdomain matching,
		// mirroring the precedence rule: slug wins only when it matches.
	}

	sub := Subdomain(host)
	if sub == "" {
		return 0, ErrNoTenant
	}

	id, err := repo.FindTenantIDBySubdomain(ctx, r.DB, sub)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrNoTenant
		}
		return 0, err
	}
	return id, nil
}

// Subdomain extracts a usable subdomain label from a host header: the port
// is stripped, the host split on ".", and the first label taken. Empty,
// "www", and "localhost" labels are not usable and yield "".
func Subdomain(host string) string {
	h := host
	if i := strings.IndexByte(h, ':'); i >= 0 {
		h = h[:i]
	}
	label, _, _ := strings.Cut(h, ".")
	switch label {
	case "", "www", "localhost":
		return ""
	}
	return label
}
