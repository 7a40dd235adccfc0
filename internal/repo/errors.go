// Storage failure classification.
//
// SQLite surfaces operational failures as driver error strings. Classify
// inspects them exactly once, here, and maps them onto typed sentinels so
// the service and HTTP layers can branch with errors.Is instead of sniffing
// message text themselves.
package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for consistency across services and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

var (
	// ErrBusy indicates lock contention on the shared SQLite file (the bot
	// may hold a write transaction). Retrying the whole operation is safe.
	ErrBusy = errors.New("storage busy")

	// ErrSchemaMissing indicates a referenced table does not exist yet.
	// EnsureOrderSchema repairs the order tables on the next attempt.
	ErrSchemaMissing = errors.New("storage schema missing")
)

// Classify wraps a raw database error with the matching typed sentinel.
// Unrecognized errors pass through unchanged. Nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrBusy) || errors.Is(err, ErrSchemaMissing) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database is locked") ||
		(strings.Contains(msg, "sqlite") && strings.Contains(msg, "locked")):
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case strings.Contains(msg, "no such table"):
		return fmt.Errorf("%w: %v", ErrSchemaMissing, err)
	default:
		return err
	}
}
