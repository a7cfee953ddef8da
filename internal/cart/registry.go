package cart

import (
	"sync"

	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
)

// ErrInvalidQuantity rejects UpdateQuantity calls below 1.
var ErrInvalidQuantity = pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")

// Registry owns one Store per shopper session. Stores are created on first
// access and live for the process lifetime; carts are ephemeral by design and
// are never persisted.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{stores: map[string]*Store{}}
}

// Get returns the cart for the session, creating it when absent.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[sessionID]; ok {
		return store
	}
	store := NewStore()
	r.stores[sessionID] = store
	return store
}

// Drop forgets the session's cart entirely.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, sessionID)
}
