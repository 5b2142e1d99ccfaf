package database

import (
	"fmt"
	"log"

	"restaurant-catalog/pkg/config"
	"restaurant-catalog/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// QuotedNamingStrategy wraps the default naming strategy and quotes all identifiers
// This ensures PostgreSQL uses case-sensitive column names as defined in the schema
type QuotedNamingStrategy struct {
	schema.NamingStrategy
}

// ColumnName quotes column names for PostgreSQL case-sensitivity
func (q QuotedNamingStrategy) ColumnName(table, column string) string {
	return fmt.Sprintf("\"%s\"", q.NamingStrategy.ColumnName(table, column))
}

// TableName quotes table names
func (q QuotedNamingStrategy) TableName(table string) string {
	return fmt.Sprintf("\"%s\"", q.NamingStrategy.TableName(table))
}

// JoinTableName quotes join table names
func (q QuotedNamingStrategy) JoinTableName(joinTable string) string {
	return fmt.Sprintf("\"%s\"", q.NamingStrategy.JoinTableName(joinTable))
}

// NewGormConfig builds the GORM configuration shared by the production
// connection and the test databases, so both resolve the same quoted
// camelCase identifiers.
func NewGormConfig(verbose bool) *gorm.Config {
	logMode := logger.Error
	if verbose {
		logMode = logger.Info
	}
	return &gorm.Config{
		Logger:      logger.Default.LogMode(logMode),
		PrepareStmt: false,
		NamingStrategy: QuotedNamingStrategy{
			schema.NamingStrategy{
				SingularTable: false,
			},
		},
	}
}

// Connect opens the PostgreSQL connection pool. The returned handle is
// injected into the handlers; there is no package-level singleton.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseURL,
		PreferSimpleProtocol: true, // Disable implicit prepared statements to avoid "prepared statement already exists" errors
	}), NewGormConfig(config.IsDevelopment()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	log.Println("✅ Database connection established")

	return db, nil
}

// AutoMigrate runs auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	err := db.AutoMigrate(
		// Catalog
		&models.Restaurant{},
		&models.Branch{},

		// Schedules
		&models.OpeningHours{},
		&models.SpecialHours{},

		// Menu
		&models.Category{},
		&models.Product{},

		// Stock
		&models.InventoryRecord{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	log.Println("✅ Database migrations completed")

	return nil
}

// createIndexes creates composite and partial uniqueness the ORM tags
// cannot express
func createIndexes(db *gorm.DB) {
	// Branch numbers are unique within a restaurant
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "Branch_restaurantId_branchNumber_key" ON "Branch"("restaurantId", "branchNumber")`)

	// At most one primary branch per restaurant; backs the demote-then-promote ordering
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "Branch_restaurantId_primary_key" ON "Branch"("restaurantId") WHERE "isPrimary"`)

	// One weekly row per (branch, weekday), one override per (branch, date)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "OpeningHours_branchId_weekday_key" ON "OpeningHours"("branchId", "weekday")`)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "SpecialHours_branchId_date_key" ON "SpecialHours"("branchId", "date")`)

	// One ledger row per (branch, dish)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "InventoryRecord_branchId_productId_key" ON "InventoryRecord"("branchId", "productId")`)

	// Category names are unique case-insensitively
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "Category_name_lower_key" ON "Category"(LOWER("name"))`)
}

// Close closes the database connection
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("✅ Database connection closed")
	}
}
