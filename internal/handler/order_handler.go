package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/service"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
	carts  *service.CartService
	logger *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, carts *service.CartService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, logger: logger}
}

type checkoutRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Comment      string `json:"comment"`
	DeliveryDate string `json:"delivery_date" binding:"required"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := requireCustomer(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	deliveryDate, err := time.Parse(time.DateOnly, req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be YYYY-MM-DD"})
		return
	}

	cart, err := h.carts.ResolveCart(ctx, principal)
	if err != nil {
		writeError(c, err)
		return
	}

	input := domain.OrderInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		Comment:      req.Comment,
		DeliveryDate: deliveryDate,
	}

	order, err := h.orders.PlaceOrder(ctx, cart, domain.Customer{ID: principal.CustomerID}, input)
	if err != nil {
		h.logger.Error("checkout failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int64("cart_id", cart.ID),
			zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	principal, ok := requireCustomer(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), principal.CustomerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := requireCustomer(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	// Customers only see their own orders.
	if order.CustomerID != principal.CustomerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

type advanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdvanceStatus is the administrative endpoint driving the forward-only
// status lifecycle.
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	status, err := domain.ToOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.orders.AdvanceStatus(c.Request.Context(), orderID, status); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchOrders backs the administrative listing.
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	filter := domain.OrderFilter{}

	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		filter.CustomerIDs = []int64{customerID}
	}

	if raw := c.Query("status"); raw != "" {
		status, err := domain.ToOrderStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Statuses = []domain.OrderStatus{status}
	}

	if err := filter.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one filter is required"})
		return
	}

	orders, err := h.orders.SearchOrders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}
