package inventory

import (
	"restaurant-catalog/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureForProduct seeds one untracked inventory row (quantity and reserved
// null) for every existing branch of the restaurant, in a single bulk
// insert-or-skip statement. Idempotent: existing rows are never overwritten,
// so calling it repeatedly is safe. Invoked on dish creation.
func EnsureForProduct(tx *gorm.DB, restaurantID, productID int) error {
	var branchIDs []int
	if err := tx.Model(&models.Branch{}).
		Where(`"restaurantId" = ?`, restaurantID).
		Pluck("id", &branchIDs).Error; err != nil {
		return err
	}
	if len(branchIDs) == 0 {
		return nil
	}

	records := make([]models.InventoryRecord, len(branchIDs))
	for i, branchID := range branchIDs {
		records[i] = models.InventoryRecord{
			BranchID:  branchID,
			ProductID: productID,
			IsVisible: true,
			IsActive:  true,
		}
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branchId"}, {Name: "productId"}},
		DoNothing: true,
	}).Create(&records).Error
}

// RemoveProductInventory hard-deletes every inventory row of a dish.
// Invoked on dish deletion; inventory has no soft delete.
func RemoveProductInventory(tx *gorm.DB, productID int) error {
	return tx.Where(`"productId" = ?`, productID).Delete(&models.InventoryRecord{}).Error
}
