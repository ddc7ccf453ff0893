package http

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *services.StorefrontService
}

func NewHandler(s *services.StorefrontService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/products", h.ListProducts)

	r.POST("/sessions", h.StartSession)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.CancelSession)
	r.POST("/sessions/:id/items", h.AddItem)
	r.DELETE("/sessions/:id/items/:productId", h.RemoveItem)
	r.PUT("/sessions/:id/items/:productId/quantity", h.SetQuantity)
	r.PUT("/sessions/:id/items/:productId/price", h.UpdatePrice)
	r.PUT("/sessions/:id/details", h.SetDetails)
	r.PUT("/sessions/:id/payment", h.QuickPayment)
	r.POST("/sessions/:id/submit", h.Submit)

	r.GET("/orders/overview", h.OrdersOverview)
	r.GET("/orders/pending", h.PendingOrders)
	r.GET("/orders/collect", h.CollectOrders)
	r.POST("/orders/:id/edit", h.StartEditing)
	r.PUT("/orders/:id/status", h.UpdateStatus)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) StartSession(c *gin.Context) {
	session, err := h.service.StartSession()
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(session))
}

func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *Handler) CancelSession(c *gin.Context) {
	if err := h.service.CancelSession(c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.service.AddToCart(c.Request.Context(), c.Param("id"), req.ProductID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, mutationView(result))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.service.RemoveFromCart(c.Param("id"), productID); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) SetQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.service.SetQuantity(c.Param("id"), productID, *req.Quantity)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, mutationView(result))
}

func (h *Handler) UpdatePrice(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.service.UpdatePrice(c.Param("id"), productID, *req.Price)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, mutationView(result))
}

func (h *Handler) SetDetails(c *gin.Context) {
	var req DraftDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	details := services.DraftDetails{
		Phone:   req.Phone,
		Name:    req.Name,
		Address: req.Address,
		Note:    req.Note,
	}
	if req.Date != nil {
		scheduled, err := domain.DecodeDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		details.ScheduledDate = &scheduled
	}
	if err := h.service.SetDraftDetails(c.Param("id"), details); err != nil {
		h.renderError(c, err)
		return
	}
	session, err := h.service.GetSession(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *Handler) QuickPayment(c *gin.Context) {
	var req QuickPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.ApplyQuickPayment(c.Param("id"), *req.Fraction); err != nil {
		h.renderError(c, err)
		return
	}
	session, err := h.service.GetSession(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// Submit saves the session: an edit session updates its original order, any
// other session places a new one.
func (h *Handler) Submit(c *gin.Context) {
	sessionID := c.Param("id")
	session, err := h.service.GetSession(sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	ctx := c.Request.Context()
	if session.Draft.IsEditingExisting {
		err = h.service.UpdateOrder(ctx, sessionID)
	} else {
		err = h.service.PlaceOrder(ctx, sessionID)
	}
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *Handler) OrdersOverview(c *gin.Context) {
	pending, collect, err := h.service.OrdersOverview(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending, "collect": collect})
}

func (h *Handler) PendingOrders(c *gin.Context) {
	pending, err := h.service.PendingOrders(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *Handler) CollectOrders(c *gin.Context) {
	orders, err := h.service.CollectOrders(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) StartEditing(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	session, err := h.service.StartEditing(c.Request.Context(), orderID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(session))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpdateOrderStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func sessionView(s *cart.Session) SessionResponse {
	total := s.Cart.Total()
	return SessionResponse{
		SessionID:          s.ID,
		Lines:              s.Cart.Lines(),
		Draft:              s.Draft,
		Total:              total,
		OutstandingBalance: s.Draft.Outstanding(total),
		HasProductChanges:  s.HasProductChanges(),
	}
}

func mutationView(r domain.MutationResult) MutationResponse {
	if r.Applied() {
		return MutationResponse{Applied: true}
	}
	return MutationResponse{Applied: false, Reason: string(r)}
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPhoneRequired),
		errors.Is(err, domain.ErrPhoneLength),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrAddressRequired),
		errors.Is(err, domain.ErrInvalidFraction),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNotEditing),
		errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, infra.ErrBackendRejected):
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not save the order"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "connection to the order backend failed"})
	}
}
