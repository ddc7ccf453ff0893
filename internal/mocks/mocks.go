package mocks

import (
	"context"

	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"

	"github.com/stretchr/testify/mock"
)

type MockBackendClient struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, pattern string, data any) error {
	args := m.Called(ctx, pattern, data)
	return args.Error(0)
}

func (m *MockBackendClient) GetProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockBackendClient) CreateOrder(ctx context.Context, req infra.CreateOrderRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBackendClient) UpdateOrder(ctx context.Context, req infra.UpdateOrderRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBackendClient) UpdateStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockBackendClient) GetPendingOrders(ctx context.Context) (*domain.PendingOrders, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingOrders), args.Error(1)
}

func (m *MockBackendClient) GetCollectOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockSessionRepository) Save(s *cart.Session) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(id string) (*cart.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
