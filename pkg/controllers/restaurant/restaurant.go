package restaurant

import (
	"errors"
	"strings"

	"restaurant-catalog/pkg/apperrors"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/services"
	"restaurant-catalog/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Profile lookup states for the by-owner read. PENDING_PROFILE means the
// owner account exists but no restaurant row has been created yet; the
// returned projection is not a persisted entity.
const (
	ProfileExists  = "EXISTS"
	ProfilePending = "PENDING_PROFILE"
)

// aggregateView is the hydrated read view: the restaurant row, its branches
// with schedules, and the owner identity (nil when the accounts service is
// unreachable).
type aggregateView struct {
	models.Restaurant
	Owner *services.OwnerAccount `json:"owner"`
}

// CreateRestaurant creates the restaurant profile for an owner
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req struct {
		OwnerID       int     `json:"ownerId" binding:"required"`
		Name          string  `json:"name"`
		Description   *string `json:"description"`
		Cuisine       *string `json:"cuisine"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
		ImageURL      *string `json:"imageUrl"`
		CoverImageURL *string `json:"coverImageUrl"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("Provide ownerId and restaurant details"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.RespondError(c, apperrors.Validation("Restaurant name is required"))
		return
	}

	// One restaurant per owner (business rule, checked at the application level)
	var existing models.Restaurant
	if err := h.DB.Where(`"ownerId" = ?`, req.OwnerID).First(&existing).Error; err == nil {
		utils.RespondError(c, apperrors.Validation("A restaurant already exists for this owner"))
		return
	}

	rest := models.Restaurant{
		OwnerID:       req.OwnerID,
		Name:          req.Name,
		Description:   req.Description,
		Cuisine:       req.Cuisine,
		Phone:         req.Phone,
		Email:         req.Email,
		ImageURL:      req.ImageURL,
		CoverImageURL: req.CoverImageURL,
		IsActive:      true,
	}

	if err := h.DB.Create(&rest).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.CreatedResponse(c, rest, "Restaurant created successfully")
}

// UpdateRestaurant patches restaurant scalar fields. Branches are never
// touched here.
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Name          *string `json:"name"`
		Description   *string `json:"description"`
		Cuisine       *string `json:"cuisine"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
		ImageURL      *string `json:"imageUrl"`
		CoverImageURL *string `json:"coverImageUrl"`
		IsActive      *bool   `json:"isActive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	var rest models.Restaurant
	if err := h.DB.First(&rest, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, apperrors.NotFound("Restaurant not found"))
			return
		}
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.RespondError(c, apperrors.Validation("Restaurant name cannot be blank"))
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Cuisine != nil {
		updates["cuisine"] = *req.Cuisine
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.ImageURL != nil {
		updates["imageUrl"] = *req.ImageURL
	}
	if req.CoverImageURL != nil {
		updates["coverImageUrl"] = *req.CoverImageURL
	}
	if req.IsActive != nil {
		updates["isActive"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&rest).Updates(updates).Error; err != nil {
			utils.RespondError(c, apperrors.Transaction(err))
			return
		}
	}

	utils.SuccessResponse(c, rest, "Restaurant updated successfully")
}

// GetRestaurantByID returns the fully hydrated aggregate
func (h *Handler) GetRestaurantByID(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var rest models.Restaurant
	if err := h.DB.First(&rest, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, apperrors.NotFound("Restaurant not found"))
			return
		}
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	if err := h.hydrateBranches(&rest); err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	view := aggregateView{Restaurant: rest, Owner: h.Owners.GetOwnerAccount(rest.OwnerID)}
	utils.SuccessResponse(c, view, "Restaurant fetched successfully")
}

// GetRestaurantByOwner returns the hydrated aggregate for an owner, or a
// pending-profile projection when the owner account exists but the
// restaurant has not been created yet.
func (h *Handler) GetRestaurantByOwner(c *gin.Context) {
	ownerID, err := parseIDParam(c, "ownerId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var rest models.Restaurant
	err = h.DB.Where(`"ownerId" = ?`, ownerID).First(&rest).Error
	if err == nil {
		if err := h.hydrateBranches(&rest); err != nil {
			utils.RespondError(c, apperrors.Transaction(err))
			return
		}
		view := aggregateView{Restaurant: rest, Owner: h.Owners.GetOwnerAccount(ownerID)}
		utils.SuccessResponse(c, gin.H{"state": ProfileExists, "restaurant": view}, "Restaurant fetched successfully")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	// No restaurant row: check whether the owner at least exists upstream
	account := h.Owners.GetOwnerAccount(ownerID)
	if account == nil {
		utils.RespondError(c, apperrors.NotFound("Restaurant not found"))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"state": ProfilePending,
		"owner": account,
	}, "Restaurant profile has not been created yet")
}
