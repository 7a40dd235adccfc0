// Package services defines the business logic for the tenant catalog and
// order submission. This file centralizes service-level error values so they
// can be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into HTTP status codes and stable response codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrTenantNotFound indicates the referenced tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantNotRegistered indicates the tenant exists but its storefront
	// is not live (is_registered is false).
	ErrTenantNotRegistered = errors.New("tenant not registered")

	// ErrBuyerContactRequired is returned when an order request carries no
	// buyer contact handle after trimming.
	ErrBuyerContactRequired = errors.New("buyer contact required")

	// ErrItemsRequired is returned when an order request carries no items.
	ErrItemsRequired = errors.New("items required")

	// ErrNoProductsSpecified is returned when de-duplicating the requested
	// product ids leaves an empty set (all ids were zero or negative).
	ErrNoProductsSpecified = errors.New("no products specified")

	// ErrNoValidItems is returned when none of the requested product ids
	// resolve to products owned by the order's tenant.
	ErrNoValidItems = errors.New("no valid items")
)
