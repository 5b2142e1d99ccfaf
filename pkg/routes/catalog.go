package routes

import (
	"restaurant-catalog/pkg/controllers/restaurant"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes wires restaurant profile and branch directory
// endpoints.
func RegisterCatalogRoutes(api *gin.RouterGroup, h *restaurant.Handler) {
	// Restaurant aggregate (2 reads, 2 writes)
	api.POST("/restaurants", h.CreateRestaurant)
	api.GET("/restaurants/:restaurantId", h.GetRestaurantByID)
	api.PUT("/restaurants/:restaurantId", h.UpdateRestaurant)
	api.GET("/owners/:ownerId/restaurant", h.GetRestaurantByOwner)

	// Branch directory (3 endpoints)
	api.GET("/restaurants/:restaurantId/branches", h.ListBranches)
	api.POST("/restaurants/:restaurantId/branches", h.CreateBranch)
	api.PUT("/restaurants/:restaurantId/branches/:branchId", h.UpdateBranch)
}
