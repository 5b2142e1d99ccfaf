package restaurant

import (
	"errors"
	"strings"
	"time"

	"restaurant-catalog/pkg/apperrors"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HoursEntry is one weekday row of a branch's weekly schedule. Entries
// without a weekday are skipped.
type HoursEntry struct {
	Weekday   *int   `json:"weekday"` // 0=Sunday, 6=Saturday
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsClosed  bool   `json:"isClosed"`
	Overnight bool   `json:"overnight"`
}

// SpecialEntry is one date-specific override. Entries without a date are
// skipped.
type SpecialEntry struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	OpenTime  string  `json:"openTime"`
	CloseTime string  `json:"closeTime"`
	IsClosed  bool    `json:"isClosed"`
	Overnight bool    `json:"overnight"`
	Reason    *string `json:"reason"`
}

// branchPayload is the write shape for branch create and update.
//
// OpeningHours and SpecialHours are replace-all contracts: when the key is
// present the stored set for the branch is deleted and replaced by exactly
// the supplied entries. Callers must always submit the complete desired set;
// there is no per-day patch.
type branchPayload struct {
	Name         *string         `json:"name"`
	BranchNumber *int            `json:"branchNumber"`
	Phone        *string         `json:"phone"`
	Email        *string         `json:"email"`
	AddressLine  *string         `json:"addressLine"`
	Ward         *string         `json:"ward"`
	District     *string         `json:"district"`
	City         *string         `json:"city"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	ImageURL     *string         `json:"imageUrl"`
	IsPrimary    *bool           `json:"isPrimary"`
	IsOpen       *bool           `json:"isOpen"`
	OpeningHours *[]HoursEntry   `json:"openingHours"`
	SpecialHours *[]SpecialEntry `json:"specialHours"`
}

// ListBranches returns the restaurant's branches ordered by branch number
func (h *Handler) ListBranches(c *gin.Context) {
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

	if err := h.hydrateBranches(&rest); err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}

	utils.SuccessResponse(c, rest.Branches, "Branches fetched successfully")
}

// CreateBranch creates a branch with its schedules in one transaction.
// The first branch of a restaurant is forced primary regardless of the
// request; promoting a later branch demotes all siblings first, inside the
// same transaction.
func (h *Handler) CreateBranch(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurantId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var payload branchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		utils.RespondError(c, apperrors.Validation("Branch name is required"))
		return
	}
	name := strings.TrimSpace(*payload.Name)

	var created models.Branch
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var rest models.Restaurant
		if err := tx.First(&rest, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Restaurant not found")
			}
			return err
		}

		var siblingCount int64
		if err := tx.Model(&models.Branch{}).
			Where(`"restaurantId" = ?`, restaurantID).
			Count(&siblingCount).Error; err != nil {
			return err
		}

		branchNumber, err := h.resolveBranchNumber(tx, restaurantID, payload.BranchNumber, 0)
		if err != nil {
			return err
		}

		// The first branch is always primary, whatever the caller asked for
		isPrimary := siblingCount == 0
		if !isPrimary && payload.IsPrimary != nil && *payload.IsPrimary {
			isPrimary = true
			if err := demoteSiblings(tx, restaurantID, 0); err != nil {
				return err
			}
		}

		isOpen := true
		if payload.IsOpen != nil {
			isOpen = *payload.IsOpen
		}

		branch := models.Branch{
			RestaurantID: restaurantID,
			BranchNumber: branchNumber,
			Name:         name,
			Phone:        payload.Phone,
			Email:        payload.Email,
			AddressLine:  payload.AddressLine,
			Ward:         payload.Ward,
			District:     payload.District,
			City:         payload.City,
			Latitude:     payload.Latitude,
			Longitude:    payload.Longitude,
			ImageURL:     payload.ImageURL,
			IsPrimary:    isPrimary,
			IsOpen:       isOpen,
		}
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		if payload.OpeningHours != nil {
			if err := insertOpeningHours(tx, branch.ID, *payload.OpeningHours); err != nil {
				return err
			}
		}
		if payload.SpecialHours != nil {
			if err := insertSpecialHours(tx, branch.ID, *payload.SpecialHours); err != nil {
				return err
			}
		}

		// Re-read so server-computed fields are authoritative, never an echo
		// of raw input
		return tx.First(&created, branch.ID).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.attachSchedules(&created); err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}
	utils.CreatedResponse(c, created, "Branch created successfully")
}

// UpdateBranch patches branch scalars and optionally replaces the schedule
// sets, all in one transaction.
func (h *Handler) UpdateBranch(c *gin.Context) {
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

	var payload branchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	var updated models.Branch
	err = h.DB.Transaction(func(tx *gorm.DB) error {
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

		updates := map[string]interface{}{}
		if payload.Name != nil {
			name := strings.TrimSpace(*payload.Name)
			if name == "" {
				return apperrors.Validation("Branch name cannot be blank")
			}
			updates["name"] = name
		}
		if payload.BranchNumber != nil {
			number, err := h.resolveBranchNumber(tx, restaurantID, payload.BranchNumber, branch.ID)
			if err != nil {
				return err
			}
			updates["branchNumber"] = number
		}
		if payload.Phone != nil {
			updates["phone"] = *payload.Phone
		}
		if payload.Email != nil {
			updates["email"] = *payload.Email
		}
		if payload.AddressLine != nil {
			updates["addressLine"] = *payload.AddressLine
		}
		if payload.Ward != nil {
			updates["ward"] = *payload.Ward
		}
		if payload.District != nil {
			updates["district"] = *payload.District
		}
		if payload.City != nil {
			updates["city"] = *payload.City
		}
		if payload.Latitude != nil {
			updates["latitude"] = *payload.Latitude
		}
		if payload.Longitude != nil {
			updates["longitude"] = *payload.Longitude
		}
		if payload.ImageURL != nil {
			updates["imageUrl"] = *payload.ImageURL
		}
		if payload.IsOpen != nil {
			updates["isOpen"] = *payload.IsOpen
		}
		if payload.IsPrimary != nil {
			if *payload.IsPrimary {
				// Demote all siblings before promoting, same transaction
				if err := demoteSiblings(tx, restaurantID, branch.ID); err != nil {
					return err
				}
			} else if branch.IsPrimary {
				// Every restaurant with branches keeps exactly one primary;
				// the flag only moves by promoting another branch
				return apperrors.Validation("Cannot demote the primary branch; promote another branch instead")
			}
			updates["isPrimary"] = *payload.IsPrimary
		}

		if len(updates) > 0 {
			if err := tx.Model(&branch).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Replace-all schedule semantics: the presence of the key wipes the
		// stored set, even when the supplied set is partial or empty
		if payload.OpeningHours != nil {
			if err := tx.Where(`"branchId" = ?`, branch.ID).Delete(&models.OpeningHours{}).Error; err != nil {
				return err
			}
			if err := insertOpeningHours(tx, branch.ID, *payload.OpeningHours); err != nil {
				return err
			}
		}
		if payload.SpecialHours != nil {
			if err := tx.Where(`"branchId" = ?`, branch.ID).Delete(&models.SpecialHours{}).Error; err != nil {
				return err
			}
			if err := insertSpecialHours(tx, branch.ID, *payload.SpecialHours); err != nil {
				return err
			}
		}

		return tx.First(&updated, branch.ID).Error
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.attachSchedules(&updated); err != nil {
		utils.RespondError(c, apperrors.Transaction(err))
		return
	}
	utils.SuccessResponse(c, updated, "Branch updated successfully")
}

// resolveBranchNumber validates an explicit branch number against siblings
// (excluding excludeID on renumber) or assigns max(existing)+1 when the
// number is omitted or invalid.
func (h *Handler) resolveBranchNumber(tx *gorm.DB, restaurantID int, requested *int, excludeID int) (int, error) {
	if requested != nil && *requested > 0 {
		query := tx.Model(&models.Branch{}).
			Where(`"restaurantId" = ? AND "branchNumber" = ?`, restaurantID, *requested)
		if excludeID > 0 {
			query = query.Where(`"id" <> ?`, excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, apperrors.Validation("Branch number %d is already taken", *requested)
		}
		return *requested, nil
	}

	var maxNumber int
	err := tx.Model(&models.Branch{}).
		Where(`"restaurantId" = ?`, restaurantID).
		Select(`COALESCE(MAX("branchNumber"), 0)`).
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	return maxNumber + 1, nil
}

// demoteSiblings clears the primary flag on every branch of the restaurant
// except excludeID.
func demoteSiblings(tx *gorm.DB, restaurantID, excludeID int) error {
	query := tx.Model(&models.Branch{}).
		Where(`"restaurantId" = ? AND "isPrimary"`, restaurantID)
	if excludeID > 0 {
		query = query.Where(`"id" <> ?`, excludeID)
	}
	return query.Update("isPrimary", false).Error
}

// insertOpeningHours inserts the weekly set. Entries missing a weekday are
// skipped; out-of-range or duplicate weekdays and malformed times fail
// validation, rolling back the surrounding transaction.
func insertOpeningHours(tx *gorm.DB, branchID int, entries []HoursEntry) error {
	rows := make([]models.OpeningHours, 0, len(entries))
	seen := make(map[int]bool)
	for _, e := range entries {
		if e.Weekday == nil {
			continue
		}
		weekday := *e.Weekday
		if weekday < 0 || weekday > 6 {
			return apperrors.Validation("Weekday must be between 0 and 6")
		}
		if seen[weekday] {
			return apperrors.Validation("Duplicate weekday %d in opening hours", weekday)
		}
		seen[weekday] = true
		if err := validateTimes(e.OpenTime, e.CloseTime); err != nil {
			return err
		}
		rows = append(rows, models.OpeningHours{
			BranchID:  branchID,
			Weekday:   weekday,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsClosed:  e.IsClosed,
			Overnight: e.Overnight,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// insertSpecialHours inserts the date-override set. Entries missing a date
// are skipped.
func insertSpecialHours(tx *gorm.DB, branchID int, entries []SpecialEntry) error {
	rows := make([]models.SpecialHours, 0, len(entries))
	seen := make(map[string]bool)
	for _, e := range entries {
		if strings.TrimSpace(e.Date) == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", e.Date); err != nil {
			return apperrors.Validation("Invalid date %q, use YYYY-MM-DD", e.Date)
		}
		if seen[e.Date] {
			return apperrors.Validation("Duplicate date %s in special hours", e.Date)
		}
		seen[e.Date] = true
		if err := validateTimes(e.OpenTime, e.CloseTime); err != nil {
			return err
		}
		rows = append(rows, models.SpecialHours{
			BranchID:  branchID,
			Date:      e.Date,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsClosed:  e.IsClosed,
			Overnight: e.Overnight,
			Reason:    e.Reason,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// validateTimes checks HH:MM format. Empty strings are allowed and fall back
// to the column defaults.
func validateTimes(times ...string) error {
	for _, t := range times {
		if t == "" {
			continue
		}
		if _, err := time.Parse("15:04", t); err != nil {
			return apperrors.Validation("Invalid time %q, use HH:MM", t)
		}
	}
	return nil
}

// attachSchedules loads both schedule sets onto a single branch for the
// write-path response.
func (h *Handler) attachSchedules(branch *models.Branch) error {
	if err := h.DB.Where(`"branchId" = ?`, branch.ID).Order(`"weekday" ASC`).Find(&branch.OpeningHours).Error; err != nil {
		return err
	}
	return h.DB.Where(`"branchId" = ?`, branch.ID).Order(`"date" ASC`).Find(&branch.SpecialHours).Error
}
