package http

import "storefront-service/internal/domain"

type AddItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

// Quantity and price are pointers so a zero value binds like any other
// number; range checks belong to the cart, which reports them as rejected
// mutations rather than errors.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type UpdatePriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}

// DraftDetailsRequest patches the draft; absent fields are left untouched.
// Date uses the backend's YYYYMMDD integer form.
type DraftDetailsRequest struct {
	Date    *int    `json:"date"`
	Phone   *string `json:"phone"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Note    *string `json:"note"`
}

type QuickPaymentRequest struct {
	Fraction *float64 `json:"fraction" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MutationResponse struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

type SessionResponse struct {
	SessionID          string            `json:"sessionId"`
	Lines              []domain.CartLine `json:"lines"`
	Draft              domain.OrderDraft `json:"draft"`
	Total              float64           `json:"total"`
	OutstandingBalance float64           `json:"outstandingBalance"`
	HasProductChanges  bool              `json:"hasProductChanges"`
}
