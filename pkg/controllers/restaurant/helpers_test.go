package restaurant_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-catalog/pkg/controllers/restaurant"
	"restaurant-catalog/pkg/database"
	"restaurant-catalog/pkg/routes"
	"restaurant-catalog/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTest builds an in-memory database plus a router with the catalog
// routes. ownerURL points at a stub accounts service; an empty string makes
// every owner lookup degrade to absence.
func setupTest(t *testing.T, ownerURL string) (*gorm.DB, *gin.Engine) {
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
	// One connection so every session sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	owners := services.NewOwnerAccountClient(ownerURL, 500*time.Millisecond)

	router := gin.New()
	routes.RegisterCatalogRoutes(router.Group("/api"), restaurant.NewHandler(db, owners))
	return db, router
}

// doJSON performs a request and decodes the response body.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, map[string]interface{}) {
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
	router.ServeHTTP(rec, req)

	var resp map[string]interface{}
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

// createRestaurant seeds a restaurant through the API and returns its id.
func createRestaurant(t *testing.T, router *gin.Engine, ownerID int) int {
	t.Helper()
	code, resp := doJSON(t, router, http.MethodPost, "/api/restaurants", map[string]interface{}{
		"ownerId": ownerID,
		"name":    "Test Kitchen",
	})
	if code != http.StatusCreated {
		t.Fatalf("create restaurant: status = %d, body = %v", code, resp)
	}
	return int(resp["data"].(map[string]interface{})["id"].(float64))
}

func data(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}
