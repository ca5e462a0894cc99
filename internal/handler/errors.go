package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/repository"
)

// writeError translates domain and repository sentinels into user-visible
// responses at the request boundary; nothing here is fatal to the process.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrCartAlreadyOrdered):
		c.JSON(http.StatusConflict, gin.H{"error": "cart is already ordered"})
	case errors.Is(err, repository.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "quantity must be at least 1"})
	case errors.Is(err, domain.ErrInvalidOrderInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name, phone and address are required"})
	case errors.Is(err, domain.ErrLeadTimeTooShort):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "delivery date must be at least 3 days ahead"})
	case errors.Is(err, domain.ErrCartEmpty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrCustomerInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "confirm your account first"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
