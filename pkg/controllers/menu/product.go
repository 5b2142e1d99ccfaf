package menu

import (
	"errors"
	"strings"

	"restaurant-catalog/pkg/apperrors"
	"restaurant-catalog/pkg/controllers/inventory"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// productPayload is the write shape for dish create and update. Submitted
// taxAmount/priceWithTax are deliberately absent: pricing derivatives are
// recomputed server-side from basePrice and taxRate on every write.
type productPayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	CategoryID  *int     `json:"categoryId"`
	Type        *string  `json:"type"`
	BasePrice   *float64 `json:"basePrice"`
	TaxRate     *float64 `json:"taxRate"`
	IsVisible   *bool    `json:"isVisible"`
	IsAvailable *bool    `json:"isAvailable"`
}

// ListProducts returns a restaurant's dishes with their categories
func (h *Handler) ListProducts(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var rest models.Restaurant
	if err := h.DB.First(&rest, restaurantID).Error; err != nil {
		utils.RespondError(c, apperrors.NotFound("Restaurant not found"))
		return
	}

	var products []models.Product
	if err := h.DB.Where(`"restaurantId" = ?`, restaurantID).
		Preload("Category").
		Order(`"title" ASC`).
		Find(&products).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.SuccessResponse(c, products, "Products fetched successfully")
}

// GetProduct returns one dish
func (h *Handler) GetProduct(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var product models.Product
	if err := h.DB.Preload("Category").First(&product, productID).Error; err != nil {
		utils.RespondError(c, apperrors.NotFound("Product not found"))
		return
	}
	if product.RestaurantID != restaurantID {
		utils.RespondError(c, apperrors.Ownership("Product does not belong to this restaurant"))
		return
	}

	utils.SuccessResponse(c, product, "Product fetched successfully")
}

// CreateProduct creates a dish, derives its pricing server-side and lazily
// seeds an untracked inventory row for every existing branch - all in one
// transaction.
func (h *Handler) CreateProduct(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		utils.RespondError(c, apperrors.Validation("Product title is required"))
		return
	}
	if payload.BasePrice == nil || *payload.BasePrice <= 0 {
		utils.RespondError(c, apperrors.Validation("Base price must be greater than 0"))
		return
	}
	taxRate := 0.0
	if payload.TaxRate != nil {
		if *payload.TaxRate < 0 {
			utils.RespondError(c, apperrors.Validation("Tax rate cannot be negative"))
			return
		}
		taxRate = *payload.TaxRate
	}
	if payload.Type != nil && !models.ProductType(*payload.Type).Valid() {
		utils.RespondError(c, apperrors.Validation("Invalid product type %q", *payload.Type))
		return
	}

	var created models.Product
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var rest models.Restaurant
		if err := tx.First(&rest, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Restaurant not found")
			}
			return err
		}

		if payload.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, *payload.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Category not found")
				}
				return err
			}
		}

		taxAmount, priceWithTax := models.DerivePricing(*payload.BasePrice, taxRate)

		product := models.Product{
			RestaurantID: restaurantID,
			CategoryID:   payload.CategoryID,
			Title:        strings.TrimSpace(*payload.Title),
			Description:  payload.Description,
			ImageURL:     payload.ImageURL,
			BasePrice:    *payload.BasePrice,
			TaxRate:      taxRate,
			TaxAmount:    taxAmount,
			PriceWithTax: priceWithTax,
			IsVisible:    true,
			IsAvailable:  true,
		}
		if payload.Type != nil {
			product.Type = models.ProductType(*payload.Type)
		}
		if payload.IsVisible != nil {
			product.IsVisible = *payload.IsVisible
		}
		if payload.IsAvailable != nil {
			product.IsAvailable = *payload.IsAvailable
		}

		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		if err := inventory.EnsureForProduct(tx, restaurantID, product.ID); err != nil {
			return err
		}

		return tx.Preload("Category").First(&created, product.ID).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, created, "Product created successfully")
}

// UpdateProduct patches dish fields. Any change to basePrice or taxRate
// recomputes taxAmount and priceWithTax from the merged values.
func (h *Handler) UpdateProduct(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	var updated models.Product
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product not found")
			}
			return err
		}
		if product.RestaurantID != restaurantID {
			return apperrors.Ownership("Product does not belong to this restaurant")
		}

		updates := map[string]interface{}{}
		if payload.Title != nil {
			title := strings.TrimSpace(*payload.Title)
			if title == "" {
				return apperrors.Validation("Product title cannot be blank")
			}
			updates["title"] = title
		}
		if payload.Description != nil {
			updates["description"] = *payload.Description
		}
		if payload.ImageURL != nil {
			updates["imageUrl"] = *payload.ImageURL
		}
		if payload.Type != nil {
			productType := models.ProductType(*payload.Type)
			if !productType.Valid() {
				return apperrors.Validation("Invalid product type %q", *payload.Type)
			}
			updates["type"] = productType
		}
		if payload.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, *payload.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Category not found")
				}
				return err
			}
			updates["categoryId"] = *payload.CategoryID
		}
		if payload.IsVisible != nil {
			updates["isVisible"] = *payload.IsVisible
		}
		if payload.IsAvailable != nil {
			updates["isAvailable"] = *payload.IsAvailable
		}

		if payload.BasePrice != nil || payload.TaxRate != nil {
			basePrice := product.BasePrice
			taxRate := product.TaxRate
			if payload.BasePrice != nil {
				if *payload.BasePrice <= 0 {
					return apperrors.Validation("Base price must be greater than 0")
				}
				basePrice = *payload.BasePrice
			}
			if payload.TaxRate != nil {
				if *payload.TaxRate < 0 {
					return apperrors.Validation("Tax rate cannot be negative")
				}
				taxRate = *payload.TaxRate
			}
			taxAmount, priceWithTax := models.DerivePricing(basePrice, taxRate)
			updates["basePrice"] = basePrice
			updates["taxRate"] = taxRate
			updates["taxAmount"] = taxAmount
			updates["priceWithTax"] = priceWithTax
		}

		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Category").First(&updated, product.ID).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, updated, "Product updated successfully")
}

// DeleteProduct removes a dish and cascades to its inventory rows in one
// transaction.
func (h *Handler) DeleteProduct(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product not found")
			}
			return err
		}
		if product.RestaurantID != restaurantID {
			return apperrors.Ownership("Product does not belong to this restaurant")
		}

		if err := inventory.RemoveProductInventory(tx, productID); err != nil {
			return err
		}

		return tx.Delete(&product).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Product deleted successfully")
}
