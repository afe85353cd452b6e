package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func categoryRouter(db *gorm.DB, user *models.User) *gin.Engine {
	r := gin.New()
	h := NewCategoryHandler(db)
	g := r.Group("", asUser(user))
	g.POST("/categories", h.Create)
	g.GET("/categories", h.List)
	g.PUT("/categories/:id", h.Update)
	g.DELETE("/categories/:id", h.Delete)
	return r
}

func TestCategoryCreate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := categoryRouter(db, user)

	w := doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name":  "Groceries",
		"type":  "expense",
		"color": "#EF4444",
		"icon":  nil,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Code != 0 {
		t.Fatalf("code = %d, want 0", env.Code)
	}

	var cat struct {
		ID          uint    `json:"id"`
		Name        string  `json:"name"`
		Type        string  `json:"type"`
		Color       string  `json:"color"`
		Icon        *string `json:"icon"`
		BudgetLimit *string `json:"budget_limit"`
	}
	dataField(t, env, "category", &cat)
	if cat.ID == 0 || cat.Name != "Groceries" || cat.Type != "expense" || cat.Color != "#EF4444" {
		t.Errorf("unexpected category: %+v", cat)
	}
	if cat.Icon != nil {
		t.Errorf("icon = %v, want null", *cat.Icon)
	}
	if cat.BudgetLimit != nil {
		t.Errorf("budget_limit = %v, want null", *cat.BudgetLimit)
	}
}

func TestCategoryValidation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := categoryRouter(db, user)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"type": "expense", "color": "#EF4444"}},
		{"bad type", map[string]interface{}{"name": "X", "type": "debt", "color": "#EF4444"}},
		{"bad color", map[string]interface{}{"name": "X", "type": "expense", "color": "red"}},
		{"short color", map[string]interface{}{"name": "X", "type": "expense", "color": "#F44"}},
		{"bad budget", map[string]interface{}{"name": "X", "type": "expense", "color": "#EF4444", "budget_limit": "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/categories", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
		})
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected requests persisted %d categories", count)
	}
}

func TestCategoryUpdateAndBudget(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := categoryRouter(db, user)

	w := doJSON(t, r, http.MethodPost, "/categories", map[string]interface{}{
		"name":         "Dining",
		"type":         "expense",
		"color":        "#22C55E",
		"budget_limit": "500.00",
	})
	env := decodeEnvelope(t, w)
	var created struct {
		ID          uint    `json:"id"`
		BudgetLimit *string `json:"budget_limit"`
	}
	dataField(t, env, "category", &created)
	if created.BudgetLimit == nil || *created.BudgetLimit != "500.00" {
		t.Fatalf("budget_limit = %v, want 500.00", created.BudgetLimit)
	}

	// update clears the budget when the field is sent empty
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", created.ID), map[string]interface{}{
		"name":         "Dining out",
		"type":         "expense",
		"color":        "#22C55E",
		"budget_limit": "",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	var stored models.Category
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}
	if stored.Name != "Dining out" {
		t.Errorf("name = %q, want %q", stored.Name, "Dining out")
	}
	if stored.BudgetLimitCents != nil {
		t.Errorf("budget limit = %d, want nil", *stored.BudgetLimitCents)
	}
}

func TestCategoryListFilterAndOwnership(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	ar := categoryRouter(db, alice)
	br := categoryRouter(db, bob)

	doJSON(t, ar, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Groceries", "type": "expense", "color": "#EF4444",
	})
	doJSON(t, ar, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Salary", "type": "revenue", "color": "#3B82F6",
	})
	doJSON(t, br, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Rent", "type": "expense", "color": "#F59E0B",
	})

	w := doJSON(t, ar, http.MethodGet, "/categories?type=expense", nil)
	env := decodeEnvelope(t, w)
	var items []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	dataField(t, env, "items", &items)
	if len(items) != 1 || items[0].Name != "Groceries" {
		t.Fatalf("filtered list = %+v, want only Groceries", items)
	}

	// bob cannot update alice's category
	var cat models.Category
	db.Where("user_id = ?", alice.ID).First(&cat)
	w = doJSON(t, br, http.MethodPut, fmt.Sprintf("/categories/%d", cat.ID), map[string]interface{}{
		"name": "Hijack", "type": "expense", "color": "#000000",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user update status = %d, want 404", w.Code)
	}
}
