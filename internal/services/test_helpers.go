package services

import (
	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"time"
)

func CreateMockProduct(id int, name string, price float64, available int) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Available: available,
		Image:     "data:image/jpeg;base64,mock",
	}
}

func CreateMockOrder(id int, phone, nameClient string, date int, products ...domain.OrderProduct) domain.Order {
	var total float64
	for _, p := range products {
		total += p.UnitPrice * float64(p.UnitValue)
	}
	return domain.Order{
		ID:         id,
		Company:    1,
		Date:       date,
		Phone:      phone,
		NameClient: nameClient,
		Address:    "Calle 1 #2-3",
		Total:      total,
		Status:     domain.StatusPending,
		Products:   products,
	}
}

func CreateMockSession(id string, lines ...domain.CartLine) *cart.Session {
	s := cart.NewSession(id)
	s.Cart.SetLines(lines)
	s.Draft = domain.OrderDraft{
		ScheduledDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.Local),
		Phone:         TestPhone,
		Name:          TestClientName,
		Address:       TestAddress,
	}
	return s
}

const (
	TestSessionID  = "test-session"
	TestOrderID    = 7
	TestPhone      = "3001234567"
	TestClientName = "Maria"
	TestAddress    = "Calle 1 #2-3"
)
