package menu

import (
	"errors"
	"strconv"
	"strings"

	"restaurant-catalog/pkg/apperrors"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves category and product endpoints.
type Handler struct {
	DB *gorm.DB
}

// NewHandler wires the handler with its injected database
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func parseIDParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("Invalid %s", name)
	}
	return id, nil
}

// CreateCategory creates a category. Names are trimmed and unique
// case-insensitively.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.RespondError(c, apperrors.Validation("Category name is required"))
		return
	}

	var existing models.Category
	if err := h.DB.Where(`LOWER("name") = LOWER(?)`, name).First(&existing).Error; err == nil {
		utils.RespondError(c, apperrors.Validation("Category %q already exists", existing.Name))
		return
	}

	category := models.Category{Name: name, Description: req.Description}
	if err := h.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.CreatedResponse(c, category, "Category created successfully")
}

// ListCategories returns all categories, optionally only those referenced
// by a restaurant's dishes (?restaurantId=N).
func (h *Handler) ListCategories(c *gin.Context) {
	query := h.DB.Order(`"name" ASC`)

	if raw := c.Query("restaurantId"); raw != "" {
		restaurantID, err := strconv.Atoi(raw)
		if err != nil || restaurantID <= 0 {
			utils.RespondError(c, apperrors.Validation("Invalid restaurantId"))
			return
		}
		query = query.Where(
			`"id" IN (SELECT DISTINCT "categoryId" FROM "Product" WHERE "restaurantId" = ? AND "categoryId" IS NOT NULL)`,
			restaurantID,
		)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.SuccessResponse(c, categories, "Categories fetched successfully")
}

// UpdateCategory renames a category or changes its description
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c, "categoryId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	var category models.Category
	if err := h.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, apperrors.NotFound("Category not found"))
			return
		}
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.RespondError(c, apperrors.Validation("Category name cannot be blank"))
			return
		}
		var clash models.Category
		if err := h.DB.Where(`LOWER("name") = LOWER(?) AND "id" <> ?`, name, categoryID).First(&clash).Error; err == nil {
			utils.RespondError(c, apperrors.Validation("Category %q already exists", clash.Name))
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&category).Updates(updates).Error; err != nil {
			utils.RespondError(c, apperrors.Transaction(err))
			return
		}
	}

	utils.SuccessResponse(c, category, "Category updated successfully")
}

// DeleteCategory removes a category. Dishes keep their rows with the
// category reference cleared, in the same transaction.
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c, "categoryId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Category not found")
			}
			return err
		}

		if err := tx.Model(&models.Product{}).
			Where(`"categoryId" = ?`, categoryID).
			Update("categoryId", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Category deleted successfully")
}
