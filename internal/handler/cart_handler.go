package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/sweetshop/internal/service"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts  *service.CartService
	logger *zap.Logger
}

func NewCartHandler(carts *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.carts.ResolveCart(c.Request.Context(), principalFrom(c))
	if err != nil {
		h.logger.Error("resolve cart failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) AddProduct(c *gin.Context) {
	ctx := c.Request.Context()

	cart, err := h.carts.ResolveCart(ctx, principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	cart, created, err := h.carts.AddProduct(ctx, cart, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, toCartResponse(cart))
}

func (h *CartHandler) RemoveProduct(c *gin.Context) {
	ctx := c.Request.Context()

	cart, err := h.carts.ResolveCart(ctx, principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	cart, err = h.carts.RemoveProduct(ctx, cart, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Quantity is a pointer so that an explicit 0 survives binding and gets the
// same InvalidQuantity treatment as any other qty < 1.
type changeQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	ctx := c.Request.Context()

	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	cart, err := h.carts.ResolveCart(ctx, principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	cart, err = h.carts.ChangeQuantity(ctx, cart, c.Param("slug"), *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}
