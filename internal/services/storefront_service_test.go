package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: 1, Name: "Chocolate cake", Quantity: 2, UnitPrice: 10.0, AvailabilityCeiling: 5},
		{ProductID: 2, Name: "Apple pie", Quantity: 1, UnitPrice: 5.0, AvailabilityCeiling: 5},
	}
}

func TestStorefrontService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name          string
		setupSession  func() *cart.Session
		setupMocks    func(*mocks.MockSessionRepository, *mocks.MockBackendClient, *mocks.MockPublisher, *cart.Session)
		checkRequest  func(*testing.T, infra.CreateOrderRequest)
		expectedError error
	}{
		{
			name: "successful order placement",
			setupSession: func() *cart.Session {
				s := CreateMockSession(TestSessionID, testLines()...)
				s.Draft.Note = "leave at the door"
				s.Draft.PaymentReceived = 12.5
				return s
			},
			setupMocks: func(repo *mocks.MockSessionRepository, backend *mocks.MockBackendClient, pub *mocks.MockPublisher, s *cart.Session) {
				repo.On("FindByID", TestSessionID).Return(s, nil)
				backend.On("CreateOrder", mock.Anything, mock.AnythingOfType("infra.CreateOrderRequest")).Return(nil)
				repo.On("Delete", TestSessionID).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			checkRequest: func(t *testing.T, req infra.CreateOrderRequest) {
				assert.Equal(t, 20250305, req.Date)
				assert.Equal(t, TestPhone, req.Phone)
				assert.Equal(t, TestClientName, req.NameClient)
				assert.Equal(t, 25.0, req.Total)
				assert.Equal(t, 12.5, req.SubTotal)
				assert.Equal(t, "leave at the door | Abono: $12.5", req.Description)
				assert.Equal(t, "P", req.Status)
				assert.Equal(t, []infra.CreateOrderProduct{
					{ProductID: 1, Name: "Chocolate cake", UnitValue: 2, UnitPrice: 10.0},
					{ProductID: 2, Name: "Apple pie", UnitValue: 1, UnitPrice: 5.0},
				}, req.Products)
			},
		},
		{
			name: "payment of zero leaves description bare",
			setupSession: func() *cart.Session {
				s := CreateMockSession(TestSessionID, testLines()...)
				s.Draft.Note = "ring the bell"
				return s
			},
			setupMocks: func(repo *mocks.MockSessionRepository, backend *mocks.MockBackendClient, pub *mocks.MockPublisher, s *cart.Session) {
				repo.On("FindByID", TestSessionID).Return(s, nil)
				backend.On("CreateOrder", mock.Anything, mock.AnythingOfType("infra.CreateOrderRequest")).Return(nil)
				repo.On("Delete", TestSessionID).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			checkRequest: func(t *testing.T, req infra.CreateOrderRequest) {
				assert.Equal(t, "ring the bell", req.Description)
				assert.Equal(t, 0.0, req.SubTotal)
			},
		},
		{
			name: "empty cart blocks submission",
			setupSession: func() *cart.Session {
				return CreateMockSession(TestSessionID)
			},
			setupMocks: func(repo *mocks.MockSessionRepository, backend *mocks.MockBackendClient, pub *mocks.MockPublisher, s *cart.Session) {
				repo.On("FindByID", TestSessionID).Return(s, nil)
			},
			expectedError: ErrEmptyCart,
		},
		{
			name: "missing phone reported before missing name",
			setupSession: func() *cart.Session {
				s := CreateMockSession(TestSessionID, testLines()...)
				s.Draft.Phone = ""
				s.Draft.Name = ""
				return s
			},
			setupMocks: func(repo *mocks.MockSessionRepository, backend *mocks.MockBackendClient, pub *mocks.MockPublisher, s *cart.Session) {
				repo.On("FindByID", TestSessionID).Return(s, nil)
			},
			expectedError: domain.ErrPhoneRequired,
		},
		{
			name: "backend rejection preserves the session",
			setupSession: func() *cart.Session {
				return CreateMockSession(TestSessionID, testLines()...)
			},
			setupMocks: func(repo *mocks.MockSessionRepository, backend *mocks.MockBackendClient, pub *mocks.MockPublisher, s *cart.Session) {
				repo.On("FindByID", TestSessionID).Return(s, nil)
				backend.On("CreateOrder", mock.Anything, mock.AnythingOfType("infra.CreateOrderRequest")).Return(infra.ErrBackendRejected)
			},
			expectedError: infra.ErrBackendRejected,
		},
		{
			name: "session not found",
			setupSession: func() *cart.Session {
				return nil
			},
			setupMocks: func(repo *mocks.MockSessionRepository, backend *mocks.MockBackendClient, pub *mocks.MockPublisher, s *cart.Session) {
				repo.On("FindByID", TestSessionID).Return(nil, nil)
			},
			expectedError: ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSessionRepository)
			backend := new(mocks.MockBackendClient)
			pub := new(mocks.MockPublisher)

			var captured infra.CreateOrderRequest
			session := tt.setupSession()
			tt.setupMocks(repo, backend, pub, session)
			for _, call := range backend.ExpectedCalls {
				if call.Method == "CreateOrder" {
					call.Run(func(args mock.Arguments) {
						captured = args.Get(1).(infra.CreateOrderRequest)
					})
				}
			}

			service := NewStorefrontService(repo, backend, pub)
			err := service.PlaceOrder(context.Background(), TestSessionID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				// any failure must leave the session intact for retry
				repo.AssertNotCalled(t, "Delete", TestSessionID)
				if !errors.Is(tt.expectedError, infra.ErrBackendRejected) {
					// validation failures never reach the backend
					backend.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
				}
			} else {
				assert.NoError(t, err)
				if tt.checkRequest != nil {
					tt.checkRequest(t, captured)
				}
			}

			time.Sleep(50 * time.Millisecond)
			repo.AssertExpectations(t)
			backend.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestStorefrontService_UpdateOrder(t *testing.T) {
	orderID := TestOrderID

	editSession := func(lines []domain.CartLine, original []domain.OriginalProduct) *cart.Session {
		s := CreateMockSession(TestSessionID, lines...)
		id := orderID
		s.Draft.OrderID = &id
		s.Draft.IsEditingExisting = true
		s.Draft.PhoneLocked = true
		s.Original = original
		return s
	}

	original := []domain.OriginalProduct{
		{ProductID: 1, Name: "Chocolate cake", Quantity: 2, UnitPrice: 10.0},
		{ProductID: 2, Name: "Apple pie", Quantity: 1, UnitPrice: 5.0},
	}

	tests := []struct {
		name              string
		session           *cart.Session
		wantChangeProduct bool
		expectedError     error
	}{
		{
			name:              "unchanged products clear the change flag",
			session:           editSession(testLines(), original),
			wantChangeProduct: false,
		},
		{
			name: "quantity drift sets the change flag",
			session: editSession([]domain.CartLine{
				{ProductID: 1, Name: "Chocolate cake", Quantity: 3, UnitPrice: 10.0, AvailabilityCeiling: domain.UnboundedAvailability},
				{ProductID: 2, Name: "Apple pie", Quantity: 1, UnitPrice: 5.0, AvailabilityCeiling: domain.UnboundedAvailability},
			}, original),
			wantChangeProduct: true,
		},
		{
			name: "price drift sets the change flag",
			session: editSession([]domain.CartLine{
				{ProductID: 1, Name: "Chocolate cake", Quantity: 2, UnitPrice: 11.0, AvailabilityCeiling: domain.UnboundedAvailability},
				{ProductID: 2, Name: "Apple pie", Quantity: 1, UnitPrice: 5.0, AvailabilityCeiling: domain.UnboundedAvailability},
			}, original),
			wantChangeProduct: true,
		},
		{
			name:          "session that is not editing",
			session:       CreateMockSession(TestSessionID, testLines()...),
			expectedError: ErrNotEditing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSessionRepository)
			backend := new(mocks.MockBackendClient)
			pub := new(mocks.MockPublisher)

			repo.On("FindByID", TestSessionID).Return(tt.session, nil)

			var captured infra.UpdateOrderRequest
			if tt.expectedError == nil {
				backend.On("UpdateOrder", mock.Anything, mock.AnythingOfType("infra.UpdateOrderRequest")).Return(nil).Run(func(args mock.Arguments) {
					captured = args.Get(1).(infra.UpdateOrderRequest)
				})
				repo.On("Delete", TestSessionID).Return(nil)
				pub.On("Publish", mock.Anything, "order.updated", mock.Anything).Return(nil).Maybe()
			}

			service := NewStorefrontService(repo, backend, pub)
			err := service.UpdateOrder(context.Background(), TestSessionID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				backend.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, orderID, captured.OrderID)
				assert.Equal(t, tt.wantChangeProduct, captured.ChangeProduct)
				// update wire shape uses productId/quantity/price
				assert.Equal(t, captured.Products[0].ProductID, 1)
				assert.NotZero(t, captured.Products[0].Quantity)
			}

			time.Sleep(50 * time.Millisecond)
			repo.AssertExpectations(t)
			backend.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestStorefrontService_StartEditing(t *testing.T) {
	repo := new(mocks.MockSessionRepository)
	backend := new(mocks.MockBackendClient)
	pub := new(mocks.MockPublisher)

	order := CreateMockOrder(TestOrderID, TestPhone, TestClientName, 20250305,
		domain.OrderProduct{ProductID: 1, Name: "Chocolate cake", UnitPrice: 10.0, UnitValue: 2},
		domain.OrderProduct{ProductID: 5, Name: "Discontinued pie", UnitPrice: 5.0, UnitValue: 1},
	)
	order.SubTotal = 12.5
	order.Description = "leave at the door | Abono: $12.5"

	backend.On("GetProducts", mock.Anything).Return([]domain.Product{
		CreateMockProduct(1, "Chocolate cake", 10.0, 3),
	}, nil)
	backend.On("GetPendingOrders", mock.Anything).Return(&domain.PendingOrders{
		Today: []domain.Order{order},
	}, nil)
	repo.On("Save", mock.AnythingOfType("*cart.Session")).Return(nil)

	service := NewStorefrontService(repo, backend, pub)
	session, err := service.StartEditing(context.Background(), TestOrderID)

	assert.NoError(t, err)
	assert.NotNil(t, session)

	lines := session.Cart.Lines()
	assert.Len(t, lines, 2)
	for _, l := range lines {
		// edit sessions disable the availability clamp
		assert.Equal(t, domain.UnboundedAvailability, l.AvailabilityCeiling)
	}
	assert.Equal(t, "data:image/jpeg;base64,mock", lines[0].Image)
	assert.Equal(t, "https://via.placeholder.com/150", lines[1].Image)

	assert.Equal(t, []domain.OriginalProduct{
		{ProductID: 1, Name: "Chocolate cake", Quantity: 2, UnitPrice: 10.0},
		{ProductID: 5, Name: "Discontinued pie", Quantity: 1, UnitPrice: 5.0},
	}, session.Original)

	assert.True(t, session.Draft.IsEditingExisting)
	assert.True(t, session.Draft.PhoneLocked)
	assert.NotNil(t, session.Draft.OrderID)
	assert.Equal(t, TestOrderID, *session.Draft.OrderID)
	assert.Equal(t, TestPhone, session.Draft.Phone)
	assert.Equal(t, TestClientName, session.Draft.Name)
	assert.Equal(t, "leave at the door", session.Draft.Note)
	assert.Equal(t, 12.5, session.Draft.PaymentReceived)
	assert.Equal(t, 2025, session.Draft.ScheduledDate.Year())
	assert.Equal(t, time.March, session.Draft.ScheduledDate.Month())
	assert.Equal(t, 5, session.Draft.ScheduledDate.Day())

	repo.AssertExpectations(t)
	backend.AssertExpectations(t)
}

func TestStorefrontService_StartEditing_OrderNotFound(t *testing.T) {
	repo := new(mocks.MockSessionRepository)
	backend := new(mocks.MockBackendClient)
	pub := new(mocks.MockPublisher)

	backend.On("GetProducts", mock.Anything).Return([]domain.Product{}, nil)
	backend.On("GetPendingOrders", mock.Anything).Return(&domain.PendingOrders{}, nil)

	service := NewStorefrontService(repo, backend, pub)
	session, err := service.StartEditing(context.Background(), 404)

	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, session)
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestStorefrontService_AddToCart(t *testing.T) {
	tests := []struct {
		name       string
		productID  int
		wantResult domain.MutationResult
		wantLines  int
	}{
		{name: "known product is added", productID: 1, wantResult: domain.MutationApplied, wantLines: 1},
		{name: "unknown product is rejected", productID: 99, wantResult: domain.RejectedUnknownProduct, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSessionRepository)
			backend := new(mocks.MockBackendClient)
			pub := new(mocks.MockPublisher)

			session := cart.NewSession(TestSessionID)
			repo.On("FindByID", TestSessionID).Return(session, nil)
			backend.On("GetProducts", mock.Anything).Return([]domain.Product{
				CreateMockProduct(1, "Chocolate cake", 10.0, 3),
			}, nil)

			service := NewStorefrontService(repo, backend, pub)
			result, err := service.AddToCart(context.Background(), TestSessionID, tt.productID)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantResult, result)
			assert.Equal(t, tt.wantLines, session.Cart.Len())
		})
	}
}

func TestStorefrontService_SetDraftDetails_PhoneLocked(t *testing.T) {
	repo := new(mocks.MockSessionRepository)
	backend := new(mocks.MockBackendClient)
	pub := new(mocks.MockPublisher)

	session := CreateMockSession(TestSessionID, testLines()...)
	session.Draft.PhoneLocked = true
	repo.On("FindByID", TestSessionID).Return(session, nil)

	service := NewStorefrontService(repo, backend, pub)

	newPhone := "9999999999"
	newName := "Carlos"
	err := service.SetDraftDetails(TestSessionID, DraftDetails{Phone: &newPhone, Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, TestPhone, session.Draft.Phone) // locked, unchanged
	assert.Equal(t, "Carlos", session.Draft.Name)
}

func TestStorefrontService_ApplyQuickPayment(t *testing.T) {
	repo := new(mocks.MockSessionRepository)
	backend := new(mocks.MockBackendClient)
	pub := new(mocks.MockPublisher)

	session := CreateMockSession(TestSessionID, testLines()...)
	repo.On("FindByID", TestSessionID).Return(session, nil)

	service := NewStorefrontService(repo, backend, pub)

	assert.NoError(t, service.ApplyQuickPayment(TestSessionID, 0.5))
	assert.Equal(t, 12.5, session.Draft.PaymentReceived)

	assert.NoError(t, service.ApplyQuickPayment(TestSessionID, 0))
	assert.Equal(t, 0.0, session.Draft.PaymentReceived)

	assert.ErrorIs(t, service.ApplyQuickPayment(TestSessionID, 0.25), domain.ErrInvalidFraction)
}

func TestStorefrontService_OrdersOverview(t *testing.T) {
	t.Run("returns both lists", func(t *testing.T) {
		repo := new(mocks.MockSessionRepository)
		backend := new(mocks.MockBackendClient)
		pub := new(mocks.MockPublisher)

		backend.On("GetPendingOrders", mock.Anything).Return(&domain.PendingOrders{
			Today: []domain.Order{CreateMockOrder(1, TestPhone, TestClientName, 20250305)},
		}, nil)
		backend.On("GetCollectOrders", mock.Anything).Return([]domain.Order{
			CreateMockOrder(2, TestPhone, TestClientName, 20250304),
		}, nil)

		service := NewStorefrontService(repo, backend, pub)
		pending, collect, err := service.OrdersOverview(context.Background())

		assert.NoError(t, err)
		assert.Len(t, pending.Today, 1)
		assert.Len(t, collect, 1)
		backend.AssertExpectations(t)
	})

	t.Run("either failure fails the overview", func(t *testing.T) {
		repo := new(mocks.MockSessionRepository)
		backend := new(mocks.MockBackendClient)
		pub := new(mocks.MockPublisher)

		backend.On("GetPendingOrders", mock.Anything).Return(nil, errors.New("connection refused"))
		backend.On("GetCollectOrders", mock.Anything).Return([]domain.Order{}, nil).Maybe()

		service := NewStorefrontService(repo, backend, pub)
		_, _, err := service.OrdersOverview(context.Background())

		assert.Error(t, err)
	})
}

func TestStorefrontService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.OrderStatus
		setupMocks    func(*mocks.MockBackendClient, *mocks.MockPublisher)
		expectedError error
	}{
		{
			name:   "deliver order",
			status: domain.StatusDelivered,
			setupMocks: func(backend *mocks.MockBackendClient, pub *mocks.MockPublisher) {
				backend.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusDelivered).Return(nil)
				pub.On("Publish", mock.Anything, "order.status_changed", mock.Anything).Return(nil).Maybe()
			},
		},
		{
			name:   "mark collected",
			status: domain.StatusCollected,
			setupMocks: func(backend *mocks.MockBackendClient, pub *mocks.MockPublisher) {
				backend.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusCollected).Return(nil)
				pub.On("Publish", mock.Anything, "order.status_changed", mock.Anything).Return(nil).Maybe()
			},
		},
		{
			name:          "unknown status code",
			status:        domain.OrderStatus("Z"),
			setupMocks:    func(backend *mocks.MockBackendClient, pub *mocks.MockPublisher) {},
			expectedError: ErrInvalidStatus,
		},
		{
			name:   "backend failure propagates",
			status: domain.StatusCancelled,
			setupMocks: func(backend *mocks.MockBackendClient, pub *mocks.MockPublisher) {
				backend.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusCancelled).Return(errors.New("connection refused"))
			},
			expectedError: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSessionRepository)
			backend := new(mocks.MockBackendClient)
			pub := new(mocks.MockPublisher)

			tt.setupMocks(backend, pub)

			service := NewStorefrontService(repo, backend, pub)
			err := service.UpdateOrderStatus(context.Background(), TestOrderID, tt.status)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			time.Sleep(50 * time.Millisecond)
			backend.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}
