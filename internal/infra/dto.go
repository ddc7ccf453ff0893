package infra

// Wire shapes for order mutations. Create and update name their product
// fields differently (idProducto/unitValue/unitPrice vs productId/quantity/
// price); the backend depends on the asymmetry, so both are kept exactly.

type CreateOrderProduct struct {
	ProductID int     `json:"idProducto"`
	Name      string  `json:"name"`
	UnitValue int     `json:"unitValue"`
	UnitPrice float64 `json:"unitPrice"`
}

type CreateOrderRequest struct {
	Company     int                  `json:"company"`
	Date        int                  `json:"date"`
	Phone       string               `json:"phone"`
	NameClient  string               `json:"nameClient"`
	Address     string               `json:"address"`
	Total       float64              `json:"total"`
	SubTotal    float64              `json:"subTotal"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	Products    []CreateOrderProduct `json:"products"`
}

type UpdateOrderProduct struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type UpdateOrderRequest struct {
	Company       int                  `json:"company"`
	OrderID       int                  `json:"idOrden"`
	Date          int                  `json:"date"`
	Phone         string               `json:"phone"`
	NameClient    string               `json:"nameClient"`
	Address       string               `json:"address"`
	Total         float64              `json:"total"`
	SubTotal      float64              `json:"subTotal"`
	Description   string               `json:"description"`
	ChangeProduct bool                 `json:"changeProduct"`
	Products      []UpdateOrderProduct `json:"products"`
}

type UpdateStatusRequest struct {
	Company int    `json:"company"`
	OrderID int    `json:"idOrden"`
	Status  string `json:"status"`
}
