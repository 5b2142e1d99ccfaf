package models

import (
	"time"
)

// Restaurant model - one catalog profile per owner account
type Restaurant struct {
	ID            int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OwnerID       int       `gorm:"not null;index;column:ownerId" json:"ownerId"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Description   *string   `gorm:"column:description" json:"description"`
	Cuisine       *string   `gorm:"column:cuisine" json:"cuisine"`
	Phone         *string   `gorm:"column:phone" json:"phone"`
	Email         *string   `gorm:"column:email" json:"email"`
	ImageURL      *string   `gorm:"column:imageUrl" json:"imageUrl"`
	CoverImageURL *string   `gorm:"column:coverImageUrl" json:"coverImageUrl"`
	IsActive      bool      `gorm:"not null;column:isActive" json:"isActive"`
	RatingSum     float64   `gorm:"default:0;column:ratingSum" json:"ratingSum"`
	RatingCount   int       `gorm:"default:0;column:ratingCount" json:"ratingCount"`
	AverageRating float64   `gorm:"default:0;column:averageRating" json:"averageRating"`
	CreatedAt     time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Branches []Branch  `gorm:"foreignKey:RestaurantID" json:"branches,omitempty"`
	Products []Product `gorm:"foreignKey:RestaurantID" json:"products,omitempty"`
}

// TableName specifies the table name for Restaurant model
func (Restaurant) TableName() string {
	return "Restaurant"
}

// Branch model - a physical location of a restaurant
type Branch struct {
	ID           int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	RestaurantID int       `gorm:"not null;index;column:restaurantId" json:"restaurantId"`
	BranchNumber int       `gorm:"not null;column:branchNumber" json:"branchNumber"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	Phone        *string   `gorm:"column:phone" json:"phone"`
	Email        *string   `gorm:"column:email" json:"email"`
	AddressLine  *string   `gorm:"column:addressLine" json:"addressLine"`
	Ward         *string   `gorm:"column:ward" json:"ward"`
	District     *string   `gorm:"column:district" json:"district"`
	City         *string   `gorm:"column:city" json:"city"`
	Latitude     *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude    *float64  `gorm:"column:longitude" json:"longitude"`
	ImageURL     *string   `gorm:"column:imageUrl" json:"imageUrl"`
	IsPrimary    bool      `gorm:"default:false;column:isPrimary" json:"isPrimary"`
	IsOpen       bool      `gorm:"not null;column:isOpen" json:"isOpen"`
	Rating       float64   `gorm:"default:0;column:rating" json:"rating"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Restaurant   Restaurant     `gorm:"foreignKey:RestaurantID;references:ID" json:"restaurant,omitempty"`
	OpeningHours []OpeningHours `gorm:"foreignKey:BranchID" json:"openingHours,omitempty"`
	SpecialHours []SpecialHours `gorm:"foreignKey:BranchID" json:"specialHours,omitempty"`
}

// TableName specifies the table name for Branch model
func (Branch) TableName() string {
	return "Branch"
}

// OpeningHours model - one row per (branch, weekday 0-6)
type OpeningHours struct {
	ID        int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BranchID  int       `gorm:"not null;index;column:branchId" json:"branchId"`
	Weekday   int       `gorm:"not null;column:weekday" json:"weekday"` // 0=Sunday, 6=Saturday
	OpenTime  string    `gorm:"default:'09:00';column:openTime" json:"openTime"`
	CloseTime string    `gorm:"default:'21:00';column:closeTime" json:"closeTime"`
	IsClosed  bool      `gorm:"default:false;column:isClosed" json:"isClosed"`
	Overnight bool      `gorm:"default:false;column:overnight" json:"overnight"` // close time falls on the next calendar day
	CreatedAt time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID;references:ID" json:"branch,omitempty"`
}

// TableName specifies the table name for OpeningHours model
func (OpeningHours) TableName() string {
	return "OpeningHours"
}

// SpecialHours model - date-specific override of the weekly schedule
type SpecialHours struct {
	ID        int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BranchID  int       `gorm:"not null;index;column:branchId" json:"branchId"`
	Date      string    `gorm:"not null;column:date" json:"date"` // YYYY-MM-DD
	OpenTime  string    `gorm:"default:'09:00';column:openTime" json:"openTime"`
	CloseTime string    `gorm:"default:'21:00';column:closeTime" json:"closeTime"`
	IsClosed  bool      `gorm:"default:false;column:isClosed" json:"isClosed"`
	Overnight bool      `gorm:"default:false;column:overnight" json:"overnight"`
	Reason    *string   `gorm:"column:reason" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID;references:ID" json:"branch,omitempty"`
}

// TableName specifies the table name for SpecialHours model
func (SpecialHours) TableName() string {
	return "SpecialHours"
}

// Category model - dish category, name unique case-insensitive
type Category struct {
	ID          int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "Category"
}

// Product model - a dish offered by a restaurant
//
// TaxAmount and PriceWithTax are always recomputed server-side from
// BasePrice and TaxRate; caller-submitted values are ignored.
type Product struct {
	ID           int         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	RestaurantID int         `gorm:"not null;index;column:restaurantId" json:"restaurantId"`
	CategoryID   *int        `gorm:"column:categoryId" json:"categoryId"`
	Title        string      `gorm:"not null;column:title" json:"title"`
	Description  *string     `gorm:"column:description" json:"description"`
	ImageURL     *string     `gorm:"column:imageUrl" json:"imageUrl"`
	Type         ProductType `gorm:"type:text;default:'FOOD';column:type" json:"type"`
	BasePrice    float64     `gorm:"not null;column:basePrice" json:"basePrice"`
	TaxRate      float64     `gorm:"default:0;column:taxRate" json:"taxRate"`
	TaxAmount    float64     `gorm:"default:0;column:taxAmount" json:"taxAmount"`
	PriceWithTax float64     `gorm:"default:0;column:priceWithTax" json:"priceWithTax"`
	IsVisible    bool        `gorm:"not null;column:isVisible" json:"isVisible"`
	IsAvailable  bool        `gorm:"not null;column:isAvailable" json:"isAvailable"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Restaurant Restaurant        `gorm:"foreignKey:RestaurantID;references:ID" json:"restaurant,omitempty"`
	Category   *Category         `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Inventory  []InventoryRecord `gorm:"foreignKey:ProductID" json:"inventory,omitempty"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "Product"
}

// InventoryRecord model - stock ledger entry for one dish at one branch.
//
// Nullable numeric fields mean "not tracked", which is distinct from zero.
// Sellable stock is Quantity - ReservedQuantity, derived by consumers and
// never stored.
type InventoryRecord struct {
	ID               int        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BranchID         int        `gorm:"not null;index;column:branchId" json:"branchId"`
	ProductID        int        `gorm:"not null;index;column:productId" json:"productId"`
	Quantity         *int       `gorm:"column:quantity" json:"quantity"`
	ReservedQuantity *int       `gorm:"column:reservedQuantity" json:"reservedQuantity"`
	MinQuantity      *int       `gorm:"column:minQuantity" json:"minQuantity"`
	LastRestockAt    *time.Time `gorm:"column:lastRestockAt" json:"lastRestockAt"`
	DailyLimit       *int       `gorm:"column:dailyLimit" json:"dailyLimit"`
	DailySold        *int       `gorm:"column:dailySold" json:"dailySold"`
	IsVisible        bool       `gorm:"not null;column:isVisible" json:"isVisible"`
	IsActive         bool       `gorm:"not null;column:isActive" json:"isActive"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	// Relationships
	Branch  Branch  `gorm:"foreignKey:BranchID;references:ID" json:"branch,omitempty"`
	Product Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}

// TableName specifies the table name for InventoryRecord model
func (InventoryRecord) TableName() string {
	return "InventoryRecord"
}
