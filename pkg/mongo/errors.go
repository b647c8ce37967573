package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrNotFound is returned when a souvenir id or cart login does not
	// resolve to a document.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write violates a unique index, such
	// as a second cart for the same login.
	ErrDuplicate = errors.New("duplicate key")

	// ErrUnavailable wraps connection, timeout and transport failures
	// reported by the driver. Nothing in this package retries.
	ErrUnavailable = errors.New("store unavailable")
)

// wrapErr maps driver errors onto the package sentinels so callers can
// branch with errors.Is instead of matching error strings.
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %v: %w", op, err, ErrDuplicate)
	case mongo.IsTimeout(err) || mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
