package cart

import "sync"

// Sessions maps identity ids to their session cart. Carts are created
// lazily on first use and dropped on sign-out.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*Store)}
}

// For returns the cart for the given identity, creating it if needed.
func (s *Sessions) For(identityID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[identityID]
	if !ok {
		store = NewStore()
		s.stores[identityID] = store
	}
	return store
}

// Drop discards a session's cart. Losing the session loses the cart.
func (s *Sessions) Drop(identityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, identityID)
}
