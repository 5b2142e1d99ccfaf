package inventory

import (
	"errors"
	"strconv"

	"restaurant-catalog/pkg/apperrors"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Handler serves the inventory ledger endpoints.
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

// UpsertBranchInventory merges a partial stock update into the (branch,
// dish) record. Numeric fields follow null-coalescing semantics: an omitted
// field keeps the stored value, an explicit zero is a real write. Both the
// dish and the branch must belong to the restaurant named in the path.
//
// The write is a seed insert-or-skip followed by an UPDATE scoped to the
// supplied columns, so two concurrent upserts each land only their own
// fields; there is no read-merge-write cycle and no row lock to take.
func (h *Handler) UpsertBranchInventory(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	branchID, err := parseIDParam(c, "branchId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var patch models.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}
	if !patch.Validate() {
		utils.RespondError(c, apperrors.Validation("Stock values cannot be negative"))
		return
	}

	var result models.InventoryRecord
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkTenant(tx, restaurantID, branchID, productID); err != nil {
			return err
		}

		// Untracked seed row; an existing row is left untouched
		seed := models.InventoryRecord{
			BranchID:  branchID,
			ProductID: productID,
			IsVisible: true,
			IsActive:  true,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branchId"}, {Name: "productId"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.InventoryRecord{}).
			Where(`"branchId" = ? AND "productId" = ?`, branchID, productID).
			Updates(patch.Assignments()).Error; err != nil {
			return err
		}

		return tx.Where(`"branchId" = ? AND "productId" = ?`, branchID, productID).First(&result).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, projectRecord(result), "Inventory updated successfully")
}

// ListByRestaurant returns every ledger row across the restaurant's branches
func (h *Handler) ListByRestaurant(c *gin.Context) {
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

	var branchIDs []int
	if err := h.DB.Model(&models.Branch{}).
		Where(`"restaurantId" = ?`, restaurantID).
		Pluck("id", &branchIDs).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}
	if len(branchIDs) == 0 {
		utils.SuccessResponse(c, []gin.H{}, "Inventory fetched successfully")
		return
	}

	var records []models.InventoryRecord
	if err := h.DB.Where(`"branchId" IN ?`, branchIDs).
		Preload("Branch").Preload("Product").
		Order(`"branchId" ASC, "productId" ASC`).
		Find(&records).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.SuccessResponse(c, projectRecords(records), "Inventory fetched successfully")
}

// ListByBranch returns the ledger rows of one branch
func (h *Handler) ListByBranch(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	branchID, err := parseIDParam(c, "branchId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var branch models.Branch
	if err := h.DB.First(&branch, branchID).Error; err != nil {
		utils.RespondError(c, apperrors.NotFound("Branch not found"))
		return
	}
	if branch.RestaurantID != restaurantID {
		utils.RespondError(c, apperrors.Ownership("Branch does not belong to this restaurant"))
		return
	}

	var records []models.InventoryRecord
	if err := h.DB.Where(`"branchId" = ?`, branchID).
		Preload("Branch").Preload("Product").
		Order(`"productId" ASC`).
		Find(&records).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.SuccessResponse(c, projectRecords(records), "Inventory fetched successfully")
}

// ListByProduct returns the ledger rows of one dish across branches
func (h *Handler) ListByProduct(c *gin.Context) {
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
	if err := h.DB.First(&product, productID).Error; err != nil {
		utils.RespondError(c, apperrors.NotFound("Product not found"))
		return
	}
	if product.RestaurantID != restaurantID {
		utils.RespondError(c, apperrors.Ownership("Product does not belong to this restaurant"))
		return
	}

	var records []models.InventoryRecord
	if err := h.DB.Where(`"productId" = ?`, productID).
		Preload("Branch").Preload("Product").
		Order(`"branchId" ASC`).
		Find(&records).Error; err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.SuccessResponse(c, projectRecords(records), "Inventory fetched successfully")
}

// checkTenant verifies that both the dish and the branch belong to the
// restaurant named in the path. Absence is not-found; a cross-tenant
// reference is an ownership violation and writes nothing.
func checkTenant(tx *gorm.DB, restaurantID, branchID, productID int) error {
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

	var branch models.Branch
	if err := tx.First(&branch, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Branch not found")
		}
		return err
	}
	if branch.RestaurantID != restaurantID {
		return apperrors.Ownership("Branch does not belong to this restaurant")
	}

	return nil
}

// sellable derives orderable stock: quantity minus reserved. Nil when the
// dish is untracked at the branch.
func sellable(rec models.InventoryRecord) *int {
	if rec.Quantity == nil {
		return nil
	}
	reserved := 0
	if rec.ReservedQuantity != nil {
		reserved = *rec.ReservedQuantity
	}
	n := *rec.Quantity - reserved
	return &n
}

// projectRecord joins branch and dish names for display
func projectRecord(rec models.InventoryRecord) gin.H {
	row := gin.H{
		"id":               rec.ID,
		"branchId":         rec.BranchID,
		"productId":        rec.ProductID,
		"quantity":         rec.Quantity,
		"reservedQuantity": rec.ReservedQuantity,
		"sellableStock":    sellable(rec),
		"minQuantity":      rec.MinQuantity,
		"lastRestockAt":    rec.LastRestockAt,
		"dailyLimit":       rec.DailyLimit,
		"dailySold":        rec.DailySold,
		"isVisible":        rec.IsVisible,
		"isActive":         rec.IsActive,
		"updatedAt":        rec.UpdatedAt,
	}
	if rec.Branch.ID != 0 {
		row["branchName"] = rec.Branch.Name
	}
	if rec.Product.ID != 0 {
		row["productTitle"] = rec.Product.Title
	}
	return row
}

func projectRecords(records []models.InventoryRecord) []gin.H {
	rows := make([]gin.H, len(records))
	for i, rec := range records {
		rows[i] = projectRecord(rec)
	}
	return rows
}
