package menu_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"restaurant-catalog/pkg/controllers/menu"
	"restaurant-catalog/pkg/database"
	"restaurant-catalog/pkg/models"
	"restaurant-catalog/pkg/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// fixture seeds a restaurant with one branch; dishes and categories are
// created by each test through the API.
type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	rest   models.Restaurant
	branch models.Branch
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
	if err := db.Create(&f.rest).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	f.branch = models.Branch{RestaurantID: f.rest.ID, BranchNumber: 1, Name: "Main", IsPrimary: true, IsOpen: true}
	if err := db.Create(&f.branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}

	f.router = gin.New()
	routes.RegisterMenuRoutes(f.router.Group("/api"), menu.NewHandler(db))
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

func data(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}
