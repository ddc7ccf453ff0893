package infra

import (
	"context"

	"storefront-service/internal/domain"
)

type BackendClientInterface interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) error
	UpdateOrder(ctx context.Context, req UpdateOrderRequest) error
	UpdateStatus(ctx context.Context, orderID int, status domain.OrderStatus) error
	GetPendingOrders(ctx context.Context) (*domain.PendingOrders, error)
	GetCollectOrders(ctx context.Context) ([]domain.Order, error)
}

var _ BackendClientInterface = (*BackendClient)(nil)
