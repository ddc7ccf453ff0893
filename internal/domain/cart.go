package domain

// UnboundedAvailability disables the availability clamp on a cart line.
// Lines rebuilt from an existing order use it because the true current stock
// is unknown at edit time.
const UnboundedAvailability = 9999

// CartLine is one product in the cart. Quantity stays within
// [1, AvailabilityCeiling] whenever the ceiling is positive.
type CartLine struct {
	ProductID           int     `json:"productId"`
	Name                string  `json:"name"`
	UnitPrice           float64 `json:"unitPrice"`
	Quantity            int     `json:"quantity"`
	AvailabilityCeiling int     `json:"availabilityCeiling"`
	Image               string  `json:"image"`
}

func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// MutationResult reports whether a cart mutation was applied. Rejections are
// ordinary outcomes, not errors; callers may surface them or ignore them.
type MutationResult string

const (
	MutationApplied         MutationResult = "applied"
	RejectedUnknownProduct  MutationResult = "unknown_product"
	RejectedCeilingReached  MutationResult = "ceiling_reached"
	RejectedInvalidQuantity MutationResult = "invalid_quantity"
	RejectedInvalidPrice    MutationResult = "invalid_price"
)

func (r MutationResult) Applied() bool {
	return r == MutationApplied
}

// OriginalProduct is one line of the snapshot captured when an existing order
// is loaded for editing. The snapshot is never mutated.
type OriginalProduct struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}
