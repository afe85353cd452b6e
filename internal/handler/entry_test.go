package handler

import (
	"net/http"
	"testing"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func entryRouter(db *gorm.DB, user *models.User, kind string) *gin.Engine {
	r := gin.New()
	h := NewEntryHandler(db, kind)
	g := r.Group("", asUser(user))
	g.POST("/entries", h.Create)
	g.GET("/entries", h.List)
	g.PUT("/entries/:id", h.Update)
	g.DELETE("/entries/:id", h.Delete)
	return r
}

func TestEntryCreateParsesAmounts(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := entryRouter(db, user, models.CategoryExpense)

	// comma and dot separators both land on the same cents
	for _, amount := range []string{"12.34", "12,34"} {
		w := doJSON(t, r, http.MethodPost, "/entries", map[string]interface{}{
			"amount":      amount,
			"description": "Coffee",
			"date":        "2025-06-01",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("amount %q status = %d, body %s", amount, w.Code, w.Body.String())
		}
		var entry struct {
			AmountCents int64  `json:"amount_cents"`
			Amount      string `json:"amount"`
		}
		dataField(t, decodeEnvelope(t, w), "entry", &entry)
		if entry.AmountCents != 1234 || entry.Amount != "12.34" {
			t.Errorf("amount %q parsed to %d (%s), want 1234", amount, entry.AmountCents, entry.Amount)
		}
	}

	for _, amount := range []string{"", "-5.00", "abc", "0"} {
		w := doJSON(t, r, http.MethodPost, "/entries", map[string]interface{}{
			"amount":      amount,
			"description": "Coffee",
			"date":        "2025-06-01",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("amount %q status = %d, want 400", amount, w.Code)
		}
	}
}

func TestEntryCategoryMustMatchKind(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")

	revenueCat := models.Category{
		UserID: user.ID, Name: "Salary", Type: models.CategoryRevenue, Color: "#3B82F6",
	}
	if err := db.Create(&revenueCat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	// a revenue category cannot be attached to an expense
	r := entryRouter(db, user, models.CategoryExpense)
	w := doJSON(t, r, http.MethodPost, "/entries", map[string]interface{}{
		"amount":      "10.00",
		"description": "Mismatch",
		"date":        "2025-06-01",
		"category_id": revenueCat.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("kind mismatch status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestEntryListFilters(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := entryRouter(db, user, models.CategoryExpense)

	for _, tc := range []struct {
		amount string
		date   string
	}{
		{"10.00", "2025-06-01"},
		{"20.00", "2025-06-15"},
		{"40.00", "2025-06-30"},
		{"80.00", "2025-07-01"},
	} {
		w := doJSON(t, r, http.MethodPost, "/entries", map[string]interface{}{
			"amount": tc.amount, "description": "x", "date": tc.date,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("seed %s status = %d", tc.date, w.Code)
		}
	}

	// the end date bound is inclusive
	w := doJSON(t, r, http.MethodGet, "/entries?startDate=2025-06-15&endDate=2025-06-30", nil)
	env := decodeEnvelope(t, w)
	var totalCents int64
	dataField(t, env, "total_cents", &totalCents)
	if totalCents != 6000 {
		t.Errorf("filtered total_cents = %d, want 6000", totalCents)
	}

	// revenues never show up in the expense listing
	rev := entryRouter(db, user, models.CategoryRevenue)
	doJSON(t, rev, http.MethodPost, "/entries", map[string]interface{}{
		"amount": "999.00", "description": "salary", "date": "2025-06-20",
	})
	w = doJSON(t, r, http.MethodGet, "/entries?startDate=2025-06-01&endDate=2025-06-30", nil)
	dataField(t, decodeEnvelope(t, w), "total_cents", &totalCents)
	if totalCents != 7000 {
		t.Errorf("expense total_cents = %d, want 7000 without revenue rows", totalCents)
	}
}
