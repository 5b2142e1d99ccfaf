package restaurant

import (
	"strconv"

	"restaurant-catalog/pkg/apperrors"
	"restaurant-catalog/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves restaurant profile and branch directory endpoints.
type Handler struct {
	DB     *gorm.DB
	Owners *services.OwnerAccountClient
}

// NewHandler wires the handler with its injected resources.
func NewHandler(db *gorm.DB, owners *services.OwnerAccountClient) *Handler {
	return &Handler{DB: db, Owners: owners}
}

// parseIDParam validates a numeric path parameter before any query runs.
func parseIDParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("Invalid %s", name)
	}
	return id, nil
}
