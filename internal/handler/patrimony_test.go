package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func patrimonyRouter(db *gorm.DB, user *models.User) *gin.Engine {
	r := gin.New()
	h := NewPatrimonyHandler(db)
	g := r.Group("", asUser(user))
	g.POST("/patrimony", h.Create)
	g.GET("/patrimony", h.List)
	g.PUT("/patrimony/:id", h.Update)
	g.DELETE("/patrimony/:id", h.Delete)
	return r
}

type patrimonyJSON struct {
	ID                uint    `json:"id"`
	Kind              string  `json:"kind"`
	Title             string  `json:"title"`
	CurrentValueCents int64   `json:"current_value_cents"`
	OriginalValue     *string `json:"original_value"`
	AmountPaid        *string `json:"amount_paid"`
}

func TestPatrimonyLiabilityInvariant(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := patrimonyRouter(db, user)

	// current above original is refused on create
	w := doJSON(t, r, http.MethodPost, "/patrimony", map[string]interface{}{
		"kind":           "liability",
		"title":          "Car loan",
		"type":           "loan",
		"current_value":  "12000.00",
		"original_value": "10000.00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	var count int64
	db.Model(&models.PatrimonyItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected liability persisted %d rows", count)
	}

	// a valid liability derives the amount already paid
	w = doJSON(t, r, http.MethodPost, "/patrimony", map[string]interface{}{
		"kind":           "liability",
		"title":          "Car loan",
		"type":           "loan",
		"current_value":  "7500.00",
		"original_value": "10000.00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var item patrimonyJSON
	dataField(t, decodeEnvelope(t, w), "item", &item)
	if item.AmountPaid == nil || *item.AmountPaid != "2500.00" {
		t.Errorf("amount_paid = %v, want 2500.00", item.AmountPaid)
	}

	// the invariant also guards updates
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/patrimony/%d", item.ID), map[string]interface{}{
		"kind":           "liability",
		"title":          "Car loan",
		"type":           "loan",
		"current_value":  "11000.00",
		"original_value": "10000.00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("update status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	var stored models.PatrimonyItem
	db.First(&stored, item.ID)
	if stored.CurrentValueCents != 7500_00 {
		t.Errorf("rejected update changed stored value to %d", stored.CurrentValueCents)
	}
}

func TestPatrimonyLiabilityNeedsOriginal(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := patrimonyRouter(db, user)

	w := doJSON(t, r, http.MethodPost, "/patrimony", map[string]interface{}{
		"kind":          "liability",
		"title":         "Loan",
		"type":          "loan",
		"current_value": "100.00",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestPatrimonyNetWorth(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := patrimonyRouter(db, user)

	doJSON(t, r, http.MethodPost, "/patrimony", map[string]interface{}{
		"kind": "asset", "title": "Apartment", "type": "property", "current_value": "300000.00",
	})
	doJSON(t, r, http.MethodPost, "/patrimony", map[string]interface{}{
		"kind": "asset", "title": "Savings", "type": "investment", "current_value": "25000.00",
	})
	doJSON(t, r, http.MethodPost, "/patrimony", map[string]interface{}{
		"kind": "liability", "title": "Mortgage", "type": "loan",
		"current_value": "180000.00", "original_value": "250000.00",
	})

	w := doJSON(t, r, http.MethodGet, "/patrimony", nil)
	env := decodeEnvelope(t, w)
	var summary struct {
		AssetsCents      int64  `json:"assets_cents"`
		LiabilitiesCents int64  `json:"liabilities_cents"`
		NetWorthCents    int64  `json:"net_worth_cents"`
		NetWorth         string `json:"net_worth"`
	}
	dataField(t, env, "summary", &summary)

	if summary.AssetsCents != 325000_00 {
		t.Errorf("assets = %d, want 32500000", summary.AssetsCents)
	}
	if summary.LiabilitiesCents != 180000_00 {
		t.Errorf("liabilities = %d, want 18000000", summary.LiabilitiesCents)
	}
	if summary.NetWorthCents != 145000_00 || summary.NetWorth != "145000.00" {
		t.Errorf("net worth = %d (%s), want 14500000", summary.NetWorthCents, summary.NetWorth)
	}

	// kind filter narrows the list but keeps user scoping
	w = doJSON(t, r, http.MethodGet, "/patrimony?kind=liability", nil)
	var items []patrimonyJSON
	dataField(t, decodeEnvelope(t, w), "items", &items)
	if len(items) != 1 || items[0].Title != "Mortgage" {
		t.Errorf("filtered list = %+v, want only Mortgage", items)
	}
}
