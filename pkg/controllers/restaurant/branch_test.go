package restaurant_test

import (
	"fmt"
	"net/http"
	"testing"

	"restaurant-catalog/pkg/models"
)

func TestFirstBranchForcedPrimary(t *testing.T) {
	_, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	// The caller explicitly asks for a non-primary branch
	code, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown", "isPrimary": false})
	if code != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	branch := data(t, resp)
	if branch["isPrimary"] != true {
		t.Error("first branch must be primary regardless of the requested value")
	}
	if branch["branchNumber"] != float64(1) {
		t.Errorf("branchNumber = %v, want 1", branch["branchNumber"])
	}
}

func TestSecondBranchNumberingAndPrimary(t *testing.T) {
	_, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown"})

	code, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Uptown"})
	if code != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	branch := data(t, resp)
	if branch["isPrimary"] != false {
		t.Error("second branch must not steal primary")
	}
	if branch["branchNumber"] != float64(2) {
		t.Errorf("branchNumber = %v, want max(existing)+1 = 2", branch["branchNumber"])
	}
}

func TestPromoteBranchDemotesSiblings(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown"})
	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Uptown"})
	secondID := int(data(t, resp)["id"].(float64))

	code, resp := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, secondID),
		map[string]interface{}{"isPrimary": true})
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	var primaries []models.Branch
	if err := db.Where(`"restaurantId" = ? AND "isPrimary"`, restID).Find(&primaries).Error; err != nil {
		t.Fatalf("query primaries: %v", err)
	}
	if len(primaries) != 1 {
		t.Fatalf("primary count = %d, want exactly 1", len(primaries))
	}
	if primaries[0].ID != secondID {
		t.Errorf("primary branch = %d, want %d", primaries[0].ID, secondID)
	}
}

func TestDuplicateBranchNumberWritesNothing(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown", "branchNumber": 1})

	code, _ := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{
			"name":         "Uptown",
			"branchNumber": 1,
			"openingHours": []map[string]interface{}{{"weekday": 0, "openTime": "08:00", "closeTime": "20:00"}},
		})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}

	var branchCount, hoursCount int64
	db.Model(&models.Branch{}).Count(&branchCount)
	db.Model(&models.OpeningHours{}).Count(&hoursCount)
	if branchCount != 1 {
		t.Errorf("branch count = %d, want 1 (failed create must write nothing)", branchCount)
	}
	if hoursCount != 0 {
		t.Errorf("opening hours count = %d, want 0", hoursCount)
	}
}

func TestInvalidHoursRollBackWholeBranchCreate(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	code, _ := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{
			"name": "Downtown",
			"openingHours": []map[string]interface{}{
				{"weekday": 1, "openTime": "08:00", "closeTime": "20:00"},
				{"weekday": 1, "openTime": "09:00", "closeTime": "21:00"},
			},
		})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for duplicate weekday", code)
	}

	var branchCount int64
	db.Model(&models.Branch{}).Count(&branchCount)
	if branchCount != 0 {
		t.Errorf("branch count = %d, want 0 (hours failure must roll back the branch row)", branchCount)
	}
}

func TestWeeklyHoursRoundTrip(t *testing.T) {
	_, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	week := make([]map[string]interface{}, 7)
	for d := 0; d < 7; d++ {
		week[d] = map[string]interface{}{"weekday": d, "openTime": "08:00", "closeTime": "22:00"}
	}
	code, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown", "openingHours": week})
	if code != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	code, resp = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d", restID), nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	branches := data(t, resp)["branches"].([]interface{})
	if len(branches) != 1 {
		t.Fatalf("branch count = %d, want 1", len(branches))
	}
	hours := branches[0].(map[string]interface{})["openingHours"].([]interface{})
	if len(hours) != 7 {
		t.Fatalf("opening hours count = %d, want 7", len(hours))
	}
	seen := map[float64]bool{}
	for _, h := range hours {
		wd := h.(map[string]interface{})["weekday"].(float64)
		if seen[wd] {
			t.Errorf("duplicate weekday %v in round-tripped schedule", wd)
		}
		seen[wd] = true
	}
	if len(seen) != 7 {
		t.Errorf("distinct weekdays = %d, want 7 with no gaps", len(seen))
	}
}

func TestUpdateBranchReplacesWeeklyHours(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	week := make([]map[string]interface{}, 7)
	for d := 0; d < 7; d++ {
		week[d] = map[string]interface{}{"weekday": d, "openTime": "08:00", "closeTime": "22:00"}
	}
	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown", "openingHours": week})
	branchID := int(data(t, resp)["id"].(float64))

	// Supplying the key replaces the whole week, even with a single entry
	code, resp := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, branchID),
		map[string]interface{}{
			"openingHours": []map[string]interface{}{{"weekday": 0, "isClosed": true}},
		})
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	var stored []models.OpeningHours
	if err := db.Where(`"branchId" = ?`, branchID).Find(&stored).Error; err != nil {
		t.Fatalf("query hours: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored hours = %d rows, want exactly 1 (replace-all contract)", len(stored))
	}
	if stored[0].Weekday != 0 || !stored[0].IsClosed {
		t.Errorf("stored row = weekday %d isClosed %v, want weekday 0 closed", stored[0].Weekday, stored[0].IsClosed)
	}
}

func TestUpdateBranchRenumberExcludesOwnRow(t *testing.T) {
	_, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown"})
	branchID := int(data(t, resp)["id"].(float64))

	// Re-asserting its own number is not a collision
	code, resp := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, branchID),
		map[string]interface{}{"branchNumber": 1})
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, resp)
	}
}

func TestUpdateBranchOfOtherRestaurantIsOwnershipError(t *testing.T) {
	_, router := setupTest(t, "")
	restA := createRestaurant(t, router, 1)
	code, resp := doJSON(t, router, http.MethodPost, "/api/restaurants", map[string]interface{}{
		"ownerId": 2, "name": "Other Kitchen",
	})
	if code != http.StatusCreated {
		t.Fatalf("create second restaurant: %d %v", code, resp)
	}
	restB := int(data(t, resp)["id"].(float64))

	_, resp = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restA),
		map[string]interface{}{"name": "Downtown"})
	branchA := int(data(t, resp)["id"].(float64))

	code, _ = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restB, branchA),
		map[string]interface{}{"name": "Hijacked"})
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
}

func TestMalformedBranchIDFailsFast(t *testing.T) {
	_, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	code, _ := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/abc", restID),
		map[string]interface{}{"name": "x"})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed identifier", code)
	}
}

func TestDemoteSolePrimaryIsRejected(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown"})
	branchID := int(data(t, resp)["id"].(float64))

	code, _ := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, branchID),
		map[string]interface{}{"isPrimary": false})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: the flag only moves by promoting another branch", code)
	}

	var primaryCount int64
	db.Model(&models.Branch{}).
		Where(`"restaurantId" = ? AND "isPrimary"`, restID).
		Count(&primaryCount)
	if primaryCount != 1 {
		t.Errorf("primary count = %d, want exactly 1", primaryCount)
	}
}

func TestDemoteNonPrimaryIsHarmless(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown"})
	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Uptown"})
	secondID := int(data(t, resp)["id"].(float64))

	// Re-asserting false on an already non-primary branch is fine
	code, _ := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, secondID),
		map[string]interface{}{"isPrimary": false})
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	var primaryCount int64
	db.Model(&models.Branch{}).
		Where(`"restaurantId" = ? AND "isPrimary"`, restID).
		Count(&primaryCount)
	if primaryCount != 1 {
		t.Errorf("primary count = %d, want exactly 1", primaryCount)
	}
}

func TestSpecialHoursRoundTrip(t *testing.T) {
	_, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	code, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{
			"name": "Downtown",
			"specialHours": []map[string]interface{}{
				{"date": "2026-09-10", "openTime": "10:00", "closeTime": "14:00"},
				{"date": "2026-09-02", "isClosed": true, "reason": "National Day"},
				{"openTime": "08:00", "closeTime": "20:00"}, // no date, skipped
			},
		})
	if code != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	code, resp = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d", restID), nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	branches := data(t, resp)["branches"].([]interface{})
	overrides := branches[0].(map[string]interface{})["specialHours"].([]interface{})
	if len(overrides) != 2 {
		t.Fatalf("special hours count = %d, want 2 (dateless entry skipped)", len(overrides))
	}
	first := overrides[0].(map[string]interface{})
	if first["date"] != "2026-09-02" {
		t.Errorf("first date = %v, want 2026-09-02 (date order)", first["date"])
	}
	if first["isClosed"] != true || first["reason"] != "National Day" {
		t.Errorf("closed day = %v", first)
	}
	second := overrides[1].(map[string]interface{})
	if second["openTime"] != "10:00" || second["closeTime"] != "14:00" {
		t.Errorf("reduced day times = (%v, %v)", second["openTime"], second["closeTime"])
	}
}

func TestUpdateBranchReplacesSpecialHours(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{
			"name": "Downtown",
			"specialHours": []map[string]interface{}{
				{"date": "2026-09-02", "isClosed": true},
				{"date": "2026-09-10", "openTime": "10:00", "closeTime": "14:00"},
			},
		})
	branchID := int(data(t, resp)["id"].(float64))

	// Supplying the key replaces the whole override set
	code, resp := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, branchID),
		map[string]interface{}{
			"specialHours": []map[string]interface{}{
				{"date": "2026-12-24", "isClosed": true, "reason": "Holiday"},
			},
		})
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, resp)
	}

	var stored []models.SpecialHours
	if err := db.Where(`"branchId" = ?`, branchID).Find(&stored).Error; err != nil {
		t.Fatalf("query special hours: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored overrides = %d rows, want exactly 1 (replace-all contract)", len(stored))
	}
	if stored[0].Date != "2026-12-24" || !stored[0].IsClosed {
		t.Errorf("stored row = %+v, want closed 2026-12-24", stored[0])
	}
}

func TestDuplicateSpecialDateRollsBackBranchCreate(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	code, _ := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{
			"name": "Downtown",
			"specialHours": []map[string]interface{}{
				{"date": "2026-09-02", "isClosed": true},
				{"date": "2026-09-02", "openTime": "10:00", "closeTime": "14:00"},
			},
		})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for duplicate date", code)
	}

	var branchCount int64
	db.Model(&models.Branch{}).Count(&branchCount)
	if branchCount != 0 {
		t.Errorf("branch count = %d, want 0 (override failure must roll back the branch row)", branchCount)
	}
}

func TestScheduleReadFailureAfterWriteIsServerError(t *testing.T) {
	db, router := setupTest(t, "")
	restID := createRestaurant(t, router, 1)

	_, resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/restaurants/%d/branches", restID),
		map[string]interface{}{"name": "Downtown"})
	branchID := int(data(t, resp)["id"].(float64))

	// Break the schedule table so the post-write read fails
	if err := db.Exec(`DROP TABLE "OpeningHours"`).Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}

	code, resp := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/restaurants/%d/branches/%d", restID, branchID),
		map[string]interface{}{"name": "Renamed"})
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 when the schedule read fails, body = %v", code, resp)
	}
}
