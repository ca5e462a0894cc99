package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/service"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(products, func(p domain.Product, _ int) productResponse {
		return toProductResponse(p)
	}))
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.catalog.GetProduct(c.Request.Context(), slug)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(categories, func(cat domain.Category, _ int) categoryResponse {
		return categoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	}))
}

func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	slug := c.Param("slug")

	// 404 for an unknown category rather than an empty list.
	if _, err := h.catalog.GetCategory(c.Request.Context(), slug); err != nil {
		writeError(c, err)
		return
	}

	products, err := h.catalog.ListByCategory(c.Request.Context(), slug)
	if err != nil {
		h.logger.Error("list by category failed", zap.String("slug", slug), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(products, func(p domain.Product, _ int) productResponse {
		return toProductResponse(p)
	}))
}
