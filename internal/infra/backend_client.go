package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-service/internal/domain"
)

// ErrBackendRejected marks a logical failure: the backend answered but with
// code != "0000" (or response != true on mutations). Transport failures are
// returned as-is.
var ErrBackendRejected = errors.New("backend rejected the request")

const successCode = "0000"

// envelope wraps every backend response. The code field signals logical
// success independent of the HTTP status.
type envelope struct {
	Code     string          `json:"code"`
	Response json.RawMessage `json:"response"`
}

// wireProduct mirrors the catalog payload. Upstream snapshots have drifted
// on the availability field name, so every observed variant is decoded and
// collapsed into one canonical value here, before anything reaches the cart.
type wireProduct struct {
	ID                 int     `json:"id_product"`
	Name               string  `json:"nombre"`
	Price              float64 `json:"price"`
	Image              string  `json:"imagen"`
	Available          *int    `json:"available"`
	Disponibilidad     *int    `json:"disponibilidad"`
	AvailableQuantity  *int    `json:"available_quantity"`
	DisponibleQuantity *int    `json:"disponible_quantity"`
	Stock              *int    `json:"stock"`
}

func (w wireProduct) availability() int {
	for _, v := range []*int{w.Available, w.Disponibilidad, w.AvailableQuantity, w.DisponibleQuantity, w.Stock} {
		if v != nil {
			return *v
		}
	}
	return 0
}

func (w wireProduct) toDomain() domain.Product {
	image := ""
	if w.Image != "" {
		image = "data:image/jpeg;base64," + w.Image
	}
	return domain.Product{
		ID:        w.ID,
		Name:      w.Name,
		Price:     w.Price,
		Available: w.availability(),
		Image:     image,
	}
}

// BackendClient talks to the remote order-management backend. The base URL
// is deployment configuration; only one is ever configured.
type BackendClient struct {
	baseURL    string
	company    int
	httpClient *http.Client
}

func NewBackendClient(baseURL string, company int, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL:    baseURL,
		company:    company,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BackendClient) get(ctx context.Context, path string) (*envelope, error) {
	url := fmt.Sprintf("%s%s?company=%d", c.baseURL, path, c.company)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *BackendClient) send(ctx context.Context, method, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *BackendClient) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("backend returned status %d: %w", resp.StatusCode, err)
	}
	if env.Code != successCode {
		return nil, fmt.Errorf("%w: code %s", ErrBackendRejected, env.Code)
	}
	return &env, nil
}

// acknowledged checks the response == true convention on mutation calls.
func acknowledged(env *envelope) error {
	var ok bool
	if err := json.Unmarshal(env.Response, &ok); err != nil || !ok {
		return ErrBackendRejected
	}
	return nil
}

func (c *BackendClient) GetProducts(ctx context.Context) ([]domain.Product, error) {
	env, err := c.get(ctx, "/products/getProduct")
	if err != nil {
		return nil, err
	}
	var wire []wireProduct
	if err := json.Unmarshal(env.Response, &wire); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, w.toDomain())
	}
	return products, nil
}

func (c *BackendClient) CreateOrder(ctx context.Context, req CreateOrderRequest) error {
	req.Company = c.company
	env, err := c.send(ctx, http.MethodPost, "/orden/createOrden", req)
	if err != nil {
		return err
	}
	return acknowledged(env)
}

func (c *BackendClient) UpdateOrder(ctx context.Context, req UpdateOrderRequest) error {
	req.Company = c.company
	env, err := c.send(ctx, http.MethodPatch, "/orden/updateOrden", req)
	if err != nil {
		return err
	}
	return acknowledged(env)
}

// UpdateStatus always uses PUT. Older client snapshots drifted between PUT
// and PATCH with no semantic difference.
func (c *BackendClient) UpdateStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	req := UpdateStatusRequest{Company: c.company, OrderID: orderID, Status: string(status)}
	env, err := c.send(ctx, http.MethodPut, "/orden/updateStatus", req)
	if err != nil {
		return err
	}
	return acknowledged(env)
}

func (c *BackendClient) GetPendingOrders(ctx context.Context) (*domain.PendingOrders, error) {
	env, err := c.get(ctx, "/orden/getOrdenPending")
	if err != nil {
		return nil, err
	}
	var pending domain.PendingOrders
	if err := json.Unmarshal(env.Response, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

// GetCollectOrders normalizes the backend's object-or-array response into a
// slice.
func (c *BackendClient) GetCollectOrders(ctx context.Context) ([]domain.Order, error) {
	env, err := c.get(ctx, "/orden/getOrdenCollect")
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := json.Unmarshal(env.Response, &orders); err == nil {
		return orders, nil
	}
	var single domain.Order
	if err := json.Unmarshal(env.Response, &single); err != nil {
		return nil, err
	}
	if single.ID == 0 {
		return nil, nil
	}
	return []domain.Order{single}, nil
}
