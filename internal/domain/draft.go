package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validation errors carry the user-facing message for the failed field.
var (
	ErrPhoneRequired   = errors.New("phone is required")
	ErrPhoneLength     = errors.New("phone must be exactly 10 digits")
	ErrNameRequired    = errors.New("name is required")
	ErrAddressRequired = errors.New("address is required")
	ErrInvalidFraction = errors.New("payment fraction must be 0, 0.5 or 1")
)

// OrderDraft holds the order metadata entered alongside the cart. When an
// existing order is being edited, OrderID is set, IsEditingExisting is true
// and the phone is locked: it is the immutable order key on update.
type OrderDraft struct {
	OrderID           *int      `json:"orderId,omitempty"`
	ScheduledDate     time.Time `json:"scheduledDate"`
	Phone             string    `json:"phone"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Note              string    `json:"note"`
	PaymentReceived   float64   `json:"paymentReceived"`
	IsEditingExisting bool      `json:"isEditingExisting"`
	PhoneLocked       bool      `json:"phoneLocked"`
}

// Validate checks the draft fields in a fixed order and stops at the first
// failure: phone required, phone length, name, address.
func (d *OrderDraft) Validate() error {
	if d.Phone == "" {
		return ErrPhoneRequired
	}
	if !isTenDigits(d.Phone) {
		return ErrPhoneLength
	}
	if d.Name == "" {
		return ErrNameRequired
	}
	if d.Address == "" {
		return ErrAddressRequired
	}
	return nil
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SetQuickPayment sets the received payment to a fraction of the total.
// A fraction of 0 clears the field rather than recording a zero payment.
func (d *OrderDraft) SetQuickPayment(total, fraction float64) error {
	switch fraction {
	case 0:
		d.PaymentReceived = 0
	case 0.5, 1.0:
		d.PaymentReceived = total * fraction
	default:
		return ErrInvalidFraction
	}
	return nil
}

func (d *OrderDraft) Outstanding(total float64) float64 {
	debt := total - d.PaymentReceived
	if debt < 0 {
		return 0
	}
	return debt
}

const paymentNoteSeparator = " | Abono: $"

// WireDescription builds the description sent to the backend, folding a
// received payment into the note as an "Abono" annotation.
func WireDescription(note string, payment float64) string {
	if payment <= 0 {
		return note
	}
	amount := strconv.FormatFloat(payment, 'f', -1, 64)
	if note == "" {
		return "Abono: $" + amount
	}
	return note + paymentNoteSeparator + amount
}

// StripPaymentNote removes a previously appended "Abono" annotation so it is
// not duplicated when an edited order is saved again.
func StripPaymentNote(desc string) string {
	if i := strings.LastIndex(desc, paymentNoteSeparator); i >= 0 {
		return desc[:i]
	}
	if strings.HasPrefix(desc, "Abono: $") {
		return ""
	}
	return desc
}
