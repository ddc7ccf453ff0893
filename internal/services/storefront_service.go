package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotEditing      = errors.New("session is not editing an existing order")
	ErrInvalidStatus   = errors.New("invalid order status")
)

const (
	catalogCacheKey   = "catalog:products"
	pendingCacheKey   = "orders:pending"
	collectCacheKey   = "orders:collect"
	catalogCacheTTL   = time.Minute
	orderListCacheTTL = 10 * time.Second

	placeholderImage = "https://via.placeholder.com/150"
)

// StorefrontService orchestrates cart sessions against the remote
// order-management backend.
type StorefrontService struct {
	sessions    repository.SessionRepository
	backend     infra.BackendClientInterface
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
}

func NewStorefrontService(sessions repository.SessionRepository, backend infra.BackendClientInterface, pub rabbit.PublisherInterface) *StorefrontService {
	return &StorefrontService{
		sessions:  sessions,
		backend:   backend,
		publisher: pub,
	}
}

func (s *StorefrontService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ListProducts returns the normalized catalog, cache-aside through Redis
// when a client is configured.
func (s *StorefrontService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.backend.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}
	return products, nil
}

func (s *StorefrontService) StartSession() (*cart.Session, error) {
	session := cart.NewSession(uuid.NewString())
	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StorefrontService) GetSession(id string) (*cart.Session, error) {
	session, err := s.sessions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// CancelSession discards the session and everything it owns without
// submitting anything.
func (s *StorefrontService) CancelSession(id string) error {
	return s.sessions.Delete(id)
}

// AddToCart resolves the product from the catalog and adds one unit.
// An id the catalog does not know is rejected like any other invalid
// mutation, not treated as an error.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, productID int) (domain.MutationResult, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return "", err
	}
	products, err := s.ListProducts(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range products {
		if p.ID == productID {
			return session.Cart.AddProduct(p), nil
		}
	}
	return domain.RejectedUnknownProduct, nil
}

func (s *StorefrontService) RemoveFromCart(sessionID string, productID int) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	session.Cart.RemoveLine(productID)
	return nil
}

func (s *StorefrontService) SetQuantity(sessionID string, productID, quantity int) (domain.MutationResult, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return "", err
	}
	return session.Cart.SetQuantity(productID, quantity), nil
}

func (s *StorefrontService) UpdatePrice(sessionID string, productID int, price float64) (domain.MutationResult, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return "", err
	}
	return session.Cart.UpdatePrice(productID, price), nil
}

// DraftDetails patches the draft metadata; nil fields are left untouched.
type DraftDetails struct {
	ScheduledDate *time.Time
	Phone         *string
	Name          *string
	Address       *string
	Note          *string
}

// SetDraftDetails applies the given fields. Phone changes are silently
// dropped while the phone is locked (editing an existing order).
func (s *StorefrontService) SetDraftDetails(sessionID string, details DraftDetails) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if details.ScheduledDate != nil {
		session.Draft.ScheduledDate = *details.ScheduledDate
	}
	if details.Phone != nil && !session.Draft.PhoneLocked {
		session.Draft.Phone = *details.Phone
	}
	if details.Name != nil {
		session.Draft.Name = *details.Name
	}
	if details.Address != nil {
		session.Draft.Address = *details.Address
	}
	if details.Note != nil {
		session.Draft.Note = *details.Note
	}
	return nil
}

func (s *StorefrontService) ApplyQuickPayment(sessionID string, fraction float64) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	return session.Draft.SetQuickPayment(session.Cart.Total(), fraction)
}

// PlaceOrder validates the draft, builds the create payload and submits it.
// The session is closed only after the backend acknowledges; any failure
// leaves it intact for retry.
func (s *StorefrontService) PlaceOrder(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if session.Cart.Len() == 0 {
		return ErrEmptyCart
	}
	if err := session.Draft.Validate(); err != nil {
		return err
	}

	total := session.Cart.Total()
	lines := session.Cart.Lines()
	req := infra.CreateOrderRequest{
		Date:        domain.EncodeDate(session.Draft.ScheduledDate),
		Phone:       session.Draft.Phone,
		NameClient:  session.Draft.Name,
		Address:     session.Draft.Address,
		Total:       total,
		SubTotal:    session.Draft.PaymentReceived,
		Description: domain.WireDescription(session.Draft.Note, session.Draft.PaymentReceived),
		Status:      string(domain.StatusPending),
		Products:    make([]infra.CreateOrderProduct, 0, len(lines)),
	}
	for _, l := range lines {
		req.Products = append(req.Products, infra.CreateOrderProduct{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitValue: l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	if err := s.backend.CreateOrder(ctx, req); err != nil {
		return err
	}

	go s.publishEvent(context.Background(), "order.created", domain.OrderPlacedEvent{
		Phone:    req.Phone,
		Date:     req.Date,
		Total:    total,
		Lines:    len(lines),
		PlacedAt: time.Now(),
	})
	s.invalidateCaches(ctx)

	return s.sessions.Delete(sessionID)
}

// UpdateOrder submits the edited session against its original order. The
// changeProduct flag is derived by diffing the current lines against the
// snapshot captured when editing started.
func (s *StorefrontService) UpdateOrder(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if !session.Draft.IsEditingExisting || session.Draft.OrderID == nil {
		return ErrNotEditing
	}
	if session.Cart.Len() == 0 {
		return ErrEmptyCart
	}
	if err := session.Draft.Validate(); err != nil {
		return err
	}

	total := session.Cart.Total()
	lines := session.Cart.Lines()
	changed := session.HasProductChanges()
	req := infra.UpdateOrderRequest{
		OrderID:       *session.Draft.OrderID,
		Date:          domain.EncodeDate(session.Draft.ScheduledDate),
		Phone:         session.Draft.Phone,
		NameClient:    session.Draft.Name,
		Address:       session.Draft.Address,
		Total:         total,
		SubTotal:      session.Draft.PaymentReceived,
		Description:   domain.WireDescription(session.Draft.Note, session.Draft.PaymentReceived),
		ChangeProduct: changed,
		Products:      make([]infra.UpdateOrderProduct, 0, len(lines)),
	}
	for _, l := range lines {
		req.Products = append(req.Products, infra.UpdateOrderProduct{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}

	if err := s.backend.UpdateOrder(ctx, req); err != nil {
		return err
	}

	go s.publishEvent(context.Background(), "order.updated", domain.OrderUpdatedEvent{
		OrderID:       req.OrderID,
		Total:         total,
		ChangeProduct: changed,
		UpdatedAt:     time.Now(),
	})
	s.invalidateCaches(ctx)

	return s.sessions.Delete(sessionID)
}

// StartEditing loads a pending order into a fresh session. Catalog and
// pending list are fetched concurrently; the catalog only contributes the
// display images. Reconstructed lines get an unbounded availability ceiling
// because the true current stock is unknown at edit time.
func (s *StorefrontService) StartEditing(ctx context.Context, orderID int) (*cart.Session, error) {
	var (
		products []domain.Product
		pending  *domain.PendingOrders
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.PendingOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := pending.FindByID(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}

	images := make(map[int]string, len(products))
	for _, p := range products {
		images[p.ID] = p.Image
	}

	session := cart.NewSession(uuid.NewString())

	lines := make([]domain.CartLine, 0, len(order.Products))
	original := make([]domain.OriginalProduct, 0, len(order.Products))
	for _, p := range order.Products {
		image := images[p.ProductID]
		if image == "" {
			image = placeholderImage
		}
		lines = append(lines, domain.CartLine{
			ProductID:           p.ProductID,
			Name:                p.Name,
			UnitPrice:           p.UnitPrice,
			Quantity:            p.UnitValue,
			AvailabilityCeiling: domain.UnboundedAvailability,
			Image:               image,
		})
		original = append(original, domain.OriginalProduct{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.UnitValue,
			UnitPrice: p.UnitPrice,
		})
	}
	session.Cart.SetLines(lines)
	session.Original = original

	scheduled, err := domain.DecodeDate(order.Date)
	if err != nil {
		log.Printf("order %d has malformed date %d, defaulting to today: %v", order.ID, order.Date, err)
		scheduled = time.Now()
	}

	orderIDCopy := order.ID
	session.Draft = domain.OrderDraft{
		OrderID:           &orderIDCopy,
		ScheduledDate:     scheduled,
		Phone:             order.Phone,
		Name:              order.ClientName(),
		Address:           order.Address,
		Note:              domain.StripPaymentNote(order.Description),
		PaymentReceived:   order.SubTotal,
		IsEditingExisting: true,
		PhoneLocked:       true,
	}

	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StorefrontService) PendingOrders(ctx context.Context) (*domain.PendingOrders, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, pendingCacheKey).Result()
		if err == nil {
			var pending domain.PendingOrders
			if err := json.Unmarshal([]byte(cached), &pending); err == nil {
				return &pending, nil
			}
		}
	}

	pending, err := s.backend.GetPendingOrders(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(pending); err == nil {
			s.redisClient.Set(ctx, pendingCacheKey, data, orderListCacheTTL)
		}
	}
	return pending, nil
}

func (s *StorefrontService) CollectOrders(ctx context.Context) ([]domain.Order, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, collectCacheKey).Result()
		if err == nil {
			var orders []domain.Order
			if err := json.Unmarshal([]byte(cached), &orders); err == nil {
				return orders, nil
			}
		}
	}

	orders, err := s.backend.GetCollectOrders(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(orders); err == nil {
			s.redisClient.Set(ctx, collectCacheKey, data, orderListCacheTTL)
		}
	}
	return orders, nil
}

// OrdersOverview fetches the pending buckets and the collect list
// concurrently. Both reads go through their respective caches.
func (s *StorefrontService) OrdersOverview(ctx context.Context) (*domain.PendingOrders, []domain.Order, error) {
	var (
		pending *domain.PendingOrders
		collect []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = s.PendingOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		collect, err = s.CollectOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pending, collect, nil
}

// UpdateOrderStatus changes an order's status on the backend. On success the
// cached lists are invalidated immediately so the next read refetches,
// keeping the acknowledged change visible before the data settles.
func (s *StorefrontService) UpdateOrderStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if err := s.backend.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.invalidateCaches(ctx)
	go s.publishEvent(context.Background(), "order.status_changed", domain.OrderStatusEvent{
		OrderID:   orderID,
		Status:    status,
		ChangedAt: time.Now(),
	})
	return nil
}

func (s *StorefrontService) publishEvent(ctx context.Context, pattern string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, pattern, data); err != nil {
		log.Printf("Failed to publish %s event: %v", pattern, err)
	}
}

func (s *StorefrontService) invalidateCaches(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, pendingCacheKey, collectCacheKey, catalogCacheKey)
}
