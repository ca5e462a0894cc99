package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/sweetshop/internal/service"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customers *service.CustomerService
	logger    *zap.Logger
}

func NewCustomerHandler(customers *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger}
}

type registerRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

func (h *CustomerHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	customer, err := h.customers.Register(c.Request.Context(), req.UserID, req.Phone, req.Address)
	if err != nil {
		h.logger.Error("register failed", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": customer.ID, "user_id": customer.UserID, "is_active": customer.IsActive})
}

// Activate is the callback of the email-verification collaborator.
func (h *CustomerHandler) Activate(c *gin.Context) {
	userID := c.Param("userID")

	if err := h.customers.Activate(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type loginRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *CustomerHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	customer, err := h.customers.Login(c.Request.Context(), req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": customer.ID, "user_id": customer.UserID})
}

func (h *CustomerHandler) Account(c *gin.Context) {
	principal, ok := requireCustomer(c)
	if !ok {
		return
	}

	customer, err := h.customers.Account(c.Request.Context(), principal.CustomerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        customer.ID,
		"user_id":   customer.UserID,
		"is_active": customer.IsActive,
		"phone":     customer.Phone,
		"address":   customer.Address,
		"orders":    toOrderResponses(customer.Orders),
	})
}
