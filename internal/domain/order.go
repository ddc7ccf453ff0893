package domain

// OrderStatus is the single-letter status code used by the order backend.
type OrderStatus string

const (
	StatusPending   OrderStatus = "P"
	StatusConfirmed OrderStatus = "C"
	StatusPaid      OrderStatus = "G"
	StatusDelivered OrderStatus = "E"
	StatusCancelled OrderStatus = "X"
	StatusCollected OrderStatus = "F"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusDelivered, StatusCancelled, StatusCollected:
		return true
	}
	return false
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusPaid:
		return "paid"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	case StatusCollected:
		return "collected"
	}
	return string(s)
}

// OrderProduct is a product line as the backend returns it on fetched orders.
// UnitValue is the quantity; the naming comes from the backend wire format.
type OrderProduct struct {
	ProductID int     `json:"idProducto"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	UnitValue int     `json:"unitValue"`
}

// Order is an order as the backend returns it. SubTotal holds the partial
// payment (abono) already received, not a line subtotal. Date is an 8-digit
// YYYYMMDD integer.
type Order struct {
	ID          int            `json:"idOrden"`
	Company     int            `json:"company"`
	Date        int            `json:"date"`
	Phone       string         `json:"phone"`
	Name        string         `json:"name"`
	NameClient  string         `json:"nameClient"`
	Address     string         `json:"address"`
	Total       float64        `json:"total"`
	SubTotal    float64        `json:"subTotal"`
	Description string         `json:"description"`
	Status      OrderStatus    `json:"status"`
	Products    []OrderProduct `json:"products"`
}

// ClientName folds the two name fields the backend uses interchangeably.
func (o Order) ClientName() string {
	if o.NameClient != "" {
		return o.NameClient
	}
	return o.Name
}

func (o Order) Outstanding() float64 {
	debt := o.Total - o.SubTotal
	if debt < 0 {
		return 0
	}
	return debt
}

// PendingOrders groups pending orders the way the backend buckets them.
type PendingOrders struct {
	Today    []Order `json:"today"`
	Tomorrow []Order `json:"tomorrow"`
	Upcoming []Order `json:"orden"`
}

// FindByID searches all three buckets.
func (p PendingOrders) FindByID(id int) *Order {
	for _, bucket := range [][]Order{p.Today, p.Tomorrow, p.Upcoming} {
		for i := range bucket {
			if bucket[i].ID == id {
				return &bucket[i]
			}
		}
	}
	return nil
}
