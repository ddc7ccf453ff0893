package cart

import (
	"time"

	"storefront-service/internal/domain"
)

// Session owns the cart, the order draft and, when editing an existing
// order, the immutable snapshot of its original product lines. It lives from
// the first add-to-cart (or the start of an edit) until the order is
// submitted or the session is cancelled.
type Session struct {
	ID       string
	Cart     *Store
	Draft    domain.OrderDraft
	Original []domain.OriginalProduct
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Cart: NewStore(),
		Draft: domain.OrderDraft{
			ScheduledDate: time.Now(),
		},
	}
}

// HasProductChanges compares the current lines against the original snapshot.
// Always false for sessions that did not start from an existing order.
func (s *Session) HasProductChanges() bool {
	if !s.Draft.IsEditingExisting {
		return false
	}
	return domain.ProductsChanged(s.Original, s.Cart.Lines())
}

// Clear discards the cart, the draft and the snapshot.
func (s *Session) Clear() {
	s.Cart.Clear()
	s.Draft = domain.OrderDraft{ScheduledDate: time.Now()}
	s.Original = nil
}
