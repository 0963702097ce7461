package terrago

import (
	"errors"
	"fmt"

	"github.com/hupe1980/terrago/index/kdtree"
)

var (
	// ErrNotFound is returned when an identity is absent from the store.
	ErrNotFound = errors.New("point not found")

	// ErrOutOfRange is returned when a slot is outside [0, Count()).
	ErrOutOfRange = errors.New("slot out of range")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a radius is negative.
	ErrInvalidRadius = errors.New("radius must be non-negative")

	// ErrEmptyStore is returned when a nearest-neighbor query hits a
	// store with no points.
	ErrEmptyStore = errors.New("store is empty")

	// ErrDuplicateID is returned when an insert carries an identity the
	// store already holds. The store is left untouched.
	ErrDuplicateID = errors.New("duplicate point id")

	// ErrInvalidCapacity is returned when the initial capacity hint is
	// not positive.
	ErrInvalidCapacity = errors.New("initial capacity must be positive")
)

// translateError maps index-level errors onto the store's error
// vocabulary. The original error remains reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kdtree.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}
	if errors.Is(err, kdtree.ErrInvalidRadius) {
		return fmt.Errorf("%w: %w", ErrInvalidRadius, err)
	}
	if errors.Is(err, kdtree.ErrEmptyTree) {
		return fmt.Errorf("%w: %w", ErrEmptyStore, err)
	}

	return err
}
