package routes

import (
	"restaurant-catalog/pkg/controllers/menu"

	"github.com/gin-gonic/gin"
)

// RegisterMenuRoutes wires dish and category CRUD.
func RegisterMenuRoutes(api *gin.RouterGroup, h *menu.Handler) {
	// Dishes (5 endpoints)
	api.GET("/restaurants/:restaurantId/products", h.ListProducts)
	api.POST("/restaurants/:restaurantId/products", h.CreateProduct)
	api.GET("/restaurants/:restaurantId/products/:productId", h.GetProduct)
	api.PUT("/restaurants/:restaurantId/products/:productId", h.UpdateProduct)
	api.DELETE("/restaurants/:restaurantId/products/:productId", h.DeleteProduct)

	// Categories (4 endpoints)
	api.GET("/categories", h.ListCategories)
	api.POST("/categories", h.CreateCategory)
	api.PUT("/categories/:categoryId", h.UpdateCategory)
	api.DELETE("/categories/:categoryId", h.DeleteCategory)
}
