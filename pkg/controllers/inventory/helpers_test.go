package inventory_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"restaurant-catalog/pkg/controllers/inventory"
	"restaurant-catalog/pkg/database"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// fixture is a seeded restaurant with two branches and one dish, created
// directly through the database so inventory tests control their own
// starting ledger.
type fixture struct {
	db        *gorm.DB
	router    *gin.Engine
	rest      models.Restaurant
	main      models.Branch
	second    models.Branch
	product   models.Product
	otherRest models.Restaurant
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), database.NewGormConfig(false))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	f := &fixture{db: db}
	f.rest = models.Restaurant{OwnerID: 1, Name: "Test Kitchen", IsActive: true}
	f.otherRest = models.Restaurant{OwnerID: 2, Name: "Other Kitchen", IsActive: true}
	for _, rest := range []*models.Restaurant{&f.rest, &f.otherRest} {
		if err := db.Create(rest).Error; err != nil {
			t.Fatalf("seed restaurant: %v", err)
		}
	}

	f.main = models.Branch{RestaurantID: f.rest.ID, BranchNumber: 1, Name: "Main", IsPrimary: true, IsOpen: true}
	f.second = models.Branch{RestaurantID: f.rest.ID, BranchNumber: 2, Name: "Second", IsOpen: true}
	for _, branch := range []*models.Branch{&f.main, &f.second} {
		if err := db.Create(branch).Error; err != nil {
			t.Fatalf("seed branch: %v", err)
		}
	}

	f.product = models.Product{
		RestaurantID: f.rest.ID,
		Title:        "Pho Bo",
		BasePrice:    100000,
		IsVisible:    true,
		IsAvailable:  true,
	}
	if err := db.Create(&f.product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	f.router = gin.New()
	routes.RegisterInventoryRoutes(f.router.Group("/api"), inventory.NewHandler(db))
	return f
}

func (f *fixture) doJSON(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var resp map[string]interface{}
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

func (f *fixture) ledgerRow(t *testing.T, branchID, productID int) (models.InventoryRecord, bool) {
	t.Helper()
	var rec models.InventoryRecord
	err := f.db.Where(`"branchId" = ? AND "productId" = ?`, branchID, productID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, false
	}
	if err != nil {
		t.Fatalf("read ledger row: %v", err)
	}
	return rec, true
}
