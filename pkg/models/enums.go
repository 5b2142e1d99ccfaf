package models

// ProductType enum
type ProductType string

const (
	ProductTypeFood     ProductType = "FOOD"
	ProductTypeBeverage ProductType = "BEVERAGE"
	ProductTypeDessert  ProductType = "DESSERT"
	ProductTypeCombo    ProductType = "COMBO"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeFood, ProductTypeBeverage, ProductTypeDessert, ProductTypeCombo:
		return true
	}
	return false
}

// RestaurantStatus enum - lifecycle state reported by the accounts service
type RestaurantStatus string

const (
	RestaurantStatusPending  RestaurantStatus = "PENDING"
	RestaurantStatusApproved RestaurantStatus = "APPROVED"
	RestaurantStatusRejected RestaurantStatus = "REJECTED"
	RestaurantStatusDisabled RestaurantStatus = "DISABLED"
)
