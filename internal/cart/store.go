package cart

import "storefront-service/internal/domain"

// Store holds the cart lines for one session. It is not safe for concurrent
// use; a session has exactly one logical writer and the repository hands out
// ownership to the active caller.
type Store struct {
	lines []domain.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// AddProduct adds one unit of the product. If a line already exists the
// quantity grows by one unless the availability ceiling is reached, in which
// case the add is rejected. A new line starts at quantity 1 with the ceiling
// taken from the normalized catalog product.
func (s *Store) AddProduct(p domain.Product) domain.MutationResult {
	for i := range s.lines {
		if s.lines[i].ProductID != p.ID {
			continue
		}
		if s.lines[i].Quantity >= s.lines[i].AvailabilityCeiling {
			return domain.RejectedCeilingReached
		}
		s.lines[i].Quantity++
		return domain.MutationApplied
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID:           p.ID,
		Name:                p.Name,
		UnitPrice:           p.Price,
		Quantity:            1,
		AvailabilityCeiling: p.Available,
		Image:               p.Image,
	})
	return domain.MutationApplied
}

// RemoveLine deletes the line unconditionally. Removing an absent line is
// not an error.
func (s *Store) RemoveLine(productID int) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the line quantity. Values below 1, values above the
// availability ceiling and unknown product ids leave the line unchanged.
func (s *Store) SetQuantity(productID, quantity int) domain.MutationResult {
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if quantity < 1 || quantity > s.lines[i].AvailabilityCeiling {
			return domain.RejectedInvalidQuantity
		}
		s.lines[i].Quantity = quantity
		return domain.MutationApplied
	}
	return domain.RejectedUnknownProduct
}

// UpdatePrice replaces the unit price. Non-positive prices are rejected.
func (s *Store) UpdatePrice(productID int, price float64) domain.MutationResult {
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if price <= 0 {
			return domain.RejectedInvalidPrice
		}
		s.lines[i].UnitPrice = price
		return domain.MutationApplied
	}
	return domain.RejectedUnknownProduct
}

// Lines returns a copy in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Line(productID int) (domain.CartLine, bool) {
	for _, l := range s.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return domain.CartLine{}, false
}

// SetLines replaces the whole cart, used when loading an existing order.
func (s *Store) SetLines(lines []domain.CartLine) {
	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
}

func (s *Store) Len() int {
	return len(s.lines)
}

func (s *Store) Total() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

func (s *Store) Clear() {
	s.lines = nil
}
