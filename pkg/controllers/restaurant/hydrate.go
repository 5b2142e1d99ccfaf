package restaurant

import (
	"restaurant-catalog/pkg/models"
)

// hydrateBranches loads the restaurant's branches with their weekly and
// date-specific schedules. Three queries total: branches ordered by branch
// number, then opening and special hours keyed by the whole branch-id set,
// merged in memory - never one schedule query per branch.
func (h *Handler) hydrateBranches(rest *models.Restaurant) error {
	var branches []models.Branch
	if err := h.DB.
		Where(`"restaurantId" = ?`, rest.ID).
		Order(`"branchNumber" ASC`).
		Find(&branches).Error; err != nil {
		return err
	}

	if len(branches) == 0 {
		rest.Branches = []models.Branch{}
		return nil
	}

	branchIDs := make([]int, len(branches))
	for i, b := range branches {
		branchIDs[i] = b.ID
	}

	var opening []models.OpeningHours
	if err := h.DB.
		Where(`"branchId" IN ?`, branchIDs).
		Order(`"weekday" ASC`).
		Find(&opening).Error; err != nil {
		return err
	}

	var special []models.SpecialHours
	if err := h.DB.
		Where(`"branchId" IN ?`, branchIDs).
		Order(`"date" ASC`).
		Find(&special).Error; err != nil {
		return err
	}

	openingByBranch := make(map[int][]models.OpeningHours)
	for _, row := range opening {
		openingByBranch[row.BranchID] = append(openingByBranch[row.BranchID], row)
	}
	specialByBranch := make(map[int][]models.SpecialHours)
	for _, row := range special {
		specialByBranch[row.BranchID] = append(specialByBranch[row.BranchID], row)
	}

	for i := range branches {
		branches[i].OpeningHours = openingByBranch[branches[i].ID]
		branches[i].SpecialHours = specialByBranch[branches[i].ID]
	}

	rest.Branches = branches
	return nil
}
