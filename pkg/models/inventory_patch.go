package models

import "time"

// InventoryPatch is the partial-update payload for an inventory record.
//
// Numeric fields follow null-coalescing semantics: a nil pointer means "not
// supplied, keep the stored value", while a non-nil pointer - including one
// pointing at zero - is a real write. IsVisible/IsActive are re-asserted on
// every call and default to true when omitted; they are never merged.
type InventoryPatch struct {
	Quantity         *int       `json:"quantity"`
	ReservedQuantity *int       `json:"reservedQuantity"`
	MinQuantity      *int       `json:"minQuantity"`
	LastRestockAt    *time.Time `json:"lastRestockAt"`
	DailyLimit       *int       `json:"dailyLimit"`
	DailySold        *int       `json:"dailySold"`
	IsVisible        *bool      `json:"isVisible"`
	IsActive         *bool      `json:"isActive"`
}

// Validate rejects negative numeric values. Null stays legal everywhere.
func (p *InventoryPatch) Validate() bool {
	for _, v := range []*int{p.Quantity, p.ReservedQuantity, p.MinQuantity, p.DailyLimit, p.DailySold} {
		if v != nil && *v < 0 {
			return false
		}
	}
	return true
}

// Assignments compiles the patch into column assignments. Pure function over
// optional fields: an omitted field is absent from the map entirely, so the
// resulting UPDATE touches only the supplied columns and a concurrent
// writer's values survive. No storage-engine conflict syntax is involved,
// and no read-merge-write cycle exists for omitted fields to clobber.
func (p *InventoryPatch) Assignments() map[string]interface{} {
	assignments := map[string]interface{}{}
	if p.Quantity != nil {
		assignments["quantity"] = *p.Quantity
	}
	if p.ReservedQuantity != nil {
		assignments["reservedQuantity"] = *p.ReservedQuantity
	}
	if p.MinQuantity != nil {
		assignments["minQuantity"] = *p.MinQuantity
	}
	if p.LastRestockAt != nil {
		assignments["lastRestockAt"] = *p.LastRestockAt
	}
	if p.DailyLimit != nil {
		assignments["dailyLimit"] = *p.DailyLimit
	}
	if p.DailySold != nil {
		assignments["dailySold"] = *p.DailySold
	}

	// Flags are absolute on every call, defaulting true when unspecified.
	assignments["isVisible"] = true
	if p.IsVisible != nil {
		assignments["isVisible"] = *p.IsVisible
	}
	assignments["isActive"] = true
	if p.IsActive != nil {
		assignments["isActive"] = *p.IsActive
	}
	return assignments
}
