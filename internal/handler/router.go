package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(
	catalog *CatalogHandler,
	cart *CartHandler,
	order *OrderHandler,
	customer *CustomerHandler,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger), ResolvePrincipal())

	router.GET("/products", catalog.ListProducts)
	router.GET("/products/:slug", catalog.GetProduct)
	router.GET("/categories", catalog.ListCategories)
	router.GET("/categories/:slug/products", catalog.ListByCategory)

	router.GET("/cart", cart.GetCart)
	router.POST("/cart/items/:slug", cart.AddProduct)
	router.DELETE("/cart/items/:slug", cart.RemoveProduct)
	router.PATCH("/cart/items/:slug", cart.ChangeQuantity)

	router.POST("/checkout", order.Checkout)
	router.GET("/orders", order.ListOrders)
	router.GET("/orders/:id", order.GetOrder)

	router.POST("/customers", customer.Register)
	router.POST("/customers/:userID/activate", customer.Activate)
	router.POST("/login", customer.Login)
	router.GET("/account", customer.Account)

	// Administrative surface; auth happens upstream.
	admin := router.Group("/admin")
	admin.GET("/orders", order.SearchOrders)
	admin.POST("/orders/:id/status", order.AdvanceStatus)

	return router
}
