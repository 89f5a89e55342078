package cart

import (
	"context"

	"github.com/swinck/catalogo-backend/internal/session"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// Store owns the session-scoped cart mapping (product id -> quantity).
type Store struct {
	sessions session.Store
}

func NewStore(sessions session.Store) *Store {
	return &Store{sessions: sessions}
}

// Get returns the cart for the session, an empty mapping when none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (map[string]int, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return sess.Cart, nil
}

// Add increments the quantity for the product. Quantities below 1 are
// clamped to 1 before the increment.
func (s *Store) Add(ctx context.Context, sessionID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.mutate(ctx, sessionID, func(sess *session.Session) {
		sess.Cart[productID] += qty
	})
}

// Remove deletes the product from the cart. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) error {
	return s.mutate(ctx, sessionID, func(sess *session.Session) {
		delete(sess.Cart, productID)
	})
}

// Clear empties the cart, used once on checkout completion.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.mutate(ctx, sessionID, func(sess *session.Session) {
		sess.Cart = map[string]int{}
	})
}

func (s *Store) mutate(ctx context.Context, sessionID string, fn func(*session.Session)) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	fn(sess)
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}
