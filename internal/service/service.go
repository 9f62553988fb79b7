// Package service implements the application operations: registering users,
// creating groups, and recording expenses. Services validate and normalize
// entities before handing them to the document store; a request that fails
// validation never reaches storage.
package service

import (
	"errors"
	"fmt"

	"github.com/nvenk/divvy/internal/docstore"
)

// Collection names, the lowercase of the entity type they hold.
const (
	CollectionAppuser = "appuser"
	CollectionGroup   = "group"
	CollectionExpense = "expense"
)

// ErrStoreUnavailable signals a persistence-layer failure (connectivity,
// storage errors). Callers surface it as a generic unavailability condition;
// the underlying cause is logged, not exposed.
var ErrStoreUnavailable = errors.New("storage unavailable")

// storeErr wraps a docstore failure as ErrStoreUnavailable, passing
// not-found through untouched so callers can branch on it.
func storeErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
