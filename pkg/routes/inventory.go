package routes

import (
	"restaurant-catalog/pkg/controllers/inventory"

	"github.com/gin-gonic/gin"
)

// RegisterInventoryRoutes wires the stock ledger endpoints.
func RegisterInventoryRoutes(api *gin.RouterGroup, h *inventory.Handler) {
	// Projections (3 endpoints)
	api.GET("/restaurants/:restaurantId/inventory", h.ListByRestaurant)
	api.GET("/restaurants/:restaurantId/branches/:branchId/inventory", h.ListByBranch)
	api.GET("/restaurants/:restaurantId/products/:productId/inventory", h.ListByProduct)

	// Upsert (1 endpoint)
	api.PUT("/restaurants/:restaurantId/branches/:branchId/products/:productId/inventory", h.UpsertBranchInventory)
}
