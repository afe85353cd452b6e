package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func recurringRouter(db *gorm.DB, user *models.User, kind string) *gin.Engine {
	r := gin.New()
	h := NewRecurringHandler(db, kind)
	g := r.Group("", asUser(user))
	g.POST("/recurring", h.Create)
	g.GET("/recurring", h.List)
	g.PUT("/recurring/:id", h.Update)
	g.DELETE("/recurring/:id", h.Delete)
	g.GET("/recurring/status/:year/:month", h.MonthStatus)
	g.POST("/recurring/:id/mark-done", h.MarkDone)
	g.POST("/recurring/:id/skip", h.Skip)
	return r
}

type recurringJSON struct {
	ID                 uint    `json:"id"`
	Kind               string  `json:"kind"`
	AmountCents        int64   `json:"amount_cents"`
	Description        string  `json:"description"`
	DueDay             int     `json:"due_day"`
	Active             bool    `json:"active"`
	IsInstallment      bool    `json:"is_installment"`
	TotalInstallments  *int    `json:"total_installments"`
	CurrentInstallment *int    `json:"current_installment"`
	EndDate            *string `json:"end_date"`
	Status             string  `json:"status"`
}

func TestRecurringInstallmentCreate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := recurringRouter(db, user, models.CategoryExpense)

	w := doJSON(t, r, http.MethodPost, "/recurring", map[string]interface{}{
		"amount":              "250.00",
		"description":         "Sofa installment",
		"due_day":             10,
		"start_date":          "2025-01-10",
		"is_installment":      true,
		"total_installments":  12,
		"current_installment": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var created recurringJSON
	dataField(t, decodeEnvelope(t, w), "recurring", &created)

	if !created.IsInstallment || created.TotalInstallments == nil || *created.TotalInstallments != 12 {
		t.Errorf("installments not stored: %+v", created)
	}
	// 12 monthly occurrences starting January land the last one in December
	if created.EndDate == nil || *created.EndDate != "2025-12-10" {
		t.Errorf("end_date = %v, want 2025-12-10", created.EndDate)
	}
}

func TestRecurringUpdateKeepsInstallmentFields(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := recurringRouter(db, user, models.CategoryExpense)

	w := doJSON(t, r, http.MethodPost, "/recurring", map[string]interface{}{
		"amount":              "90.00",
		"description":         "Phone installment",
		"due_day":             5,
		"start_date":          "2025-03-05",
		"is_installment":      true,
		"total_installments":  10,
		"current_installment": 2,
	})
	var created recurringJSON
	dataField(t, decodeEnvelope(t, w), "recurring", &created)

	// edit only amount and description, resending the installment fields
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/recurring/%d", created.ID), map[string]interface{}{
		"amount":              "95.00",
		"description":         "Phone installment (new plan)",
		"due_day":             5,
		"start_date":          "2025-03-05",
		"is_installment":      true,
		"total_installments":  10,
		"current_installment": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var updated recurringJSON
	dataField(t, decodeEnvelope(t, w), "recurring", &updated)

	if updated.AmountCents != 9500 {
		t.Errorf("amount_cents = %d, want 9500", updated.AmountCents)
	}
	if !updated.IsInstallment ||
		updated.TotalInstallments == nil || *updated.TotalInstallments != 10 ||
		updated.CurrentInstallment == nil || *updated.CurrentInstallment != 2 {
		t.Errorf("installment fields lost on update: %+v", updated)
	}
	if updated.EndDate == nil || *updated.EndDate != "2025-12-05" {
		t.Errorf("end_date = %v, want 2025-12-05", updated.EndDate)
	}
}

func TestRecurringInstallmentValidation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := recurringRouter(db, user, models.CategoryExpense)

	tests := []struct {
		name  string
		total *int
		cur   *int
	}{
		{"missing total", nil, nil},
		{"total of one", intPtr(1), intPtr(1)},
		{"current above total", intPtr(6), intPtr(7)},
		{"current zero", intPtr(6), intPtr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/recurring", map[string]interface{}{
				"amount":              "10.00",
				"description":         "x",
				"due_day":             1,
				"start_date":          "2025-01-01",
				"is_installment":      true,
				"total_installments":  tt.total,
				"current_installment": tt.cur,
			})
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRecurringMonthStatusFlow(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := recurringRouter(db, user, models.CategoryExpense)

	w := doJSON(t, r, http.MethodPost, "/recurring", map[string]interface{}{
		"amount":      "1200.00",
		"description": "Rent",
		"due_day":     5,
		"start_date":  "2025-01-05",
	})
	var rent recurringJSON
	dataField(t, decodeEnvelope(t, w), "recurring", &rent)

	// no status row yet: the month instance reads pending
	w = doJSON(t, r, http.MethodGet, "/recurring/status/2025/6", nil)
	env := decodeEnvelope(t, w)
	var items []recurringJSON
	dataField(t, env, "items", &items)
	if len(items) != 1 || items[0].Status != models.RecurringPending {
		t.Fatalf("initial month status = %+v, want one pending item", items)
	}

	// mark June paid
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/recurring/%d/mark-done", rent.ID), map[string]interface{}{
		"year": 2025, "month": 6,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("mark-done status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/recurring/status/2025/6", nil)
	dataField(t, decodeEnvelope(t, w), "items", &items)
	if len(items) != 1 || items[0].Status != models.RecurringPaid {
		t.Fatalf("month status after mark-done = %+v, want paid", items)
	}

	// July is untouched
	w = doJSON(t, r, http.MethodGet, "/recurring/status/2025/7", nil)
	dataField(t, decodeEnvelope(t, w), "items", &items)
	if len(items) != 1 || items[0].Status != models.RecurringPending {
		t.Fatalf("adjacent month status = %+v, want pending", items)
	}

	// repeating the operation keeps a single row
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/recurring/%d/mark-done", rent.ID), map[string]interface{}{
		"year": 2025, "month": 6,
	})
	var rows int64
	db.Model(&models.RecurringStatus{}).
		Where("recurring_id = ? AND year = ? AND month = ?", rent.ID, 2025, 6).
		Count(&rows)
	if rows != 1 {
		t.Errorf("status rows = %d, want 1", rows)
	}

	// skip overrides paid for the same month
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/recurring/%d/skip", rent.ID), map[string]interface{}{
		"year": 2025, "month": 6,
	})
	w = doJSON(t, r, http.MethodGet, "/recurring/status/2025/6", nil)
	dataField(t, decodeEnvelope(t, w), "items", &items)
	if len(items) != 1 || items[0].Status != models.RecurringSkipped {
		t.Fatalf("month status after skip = %+v, want skipped", items)
	}
}

func TestRecurringMonthStatusWindow(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := recurringRouter(db, user, models.CategoryExpense)

	// 3 installments starting March: occurs March through May only
	w := doJSON(t, r, http.MethodPost, "/recurring", map[string]interface{}{
		"amount":              "100.00",
		"description":         "Course",
		"due_day":             15,
		"start_date":          "2025-03-15",
		"is_installment":      true,
		"total_installments":  3,
		"current_installment": 1,
	})
	var course recurringJSON
	dataField(t, decodeEnvelope(t, w), "recurring", &course)

	var items []recurringJSON
	for month, want := range map[int]int{2: 0, 3: 1, 5: 1, 6: 0} {
		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/recurring/status/2025/%d", month), nil)
		dataField(t, decodeEnvelope(t, w), "items", &items)
		if len(items) != want {
			t.Errorf("month %d: %d items, want %d", month, len(items), want)
		}
	}

	// marking a month outside the window is rejected
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/recurring/%d/mark-done", course.ID), map[string]interface{}{
		"year": 2025, "month": 8,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-window mark-done status = %d, want 400", w.Code)
	}
}

func TestRecurringRevenueMarkReceived(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")
	r := recurringRouter(db, user, models.CategoryRevenue)

	w := doJSON(t, r, http.MethodPost, "/recurring", map[string]interface{}{
		"amount":      "5000.00",
		"description": "Salary",
		"due_day":     1,
		"start_date":  "2025-01-01",
	})
	var salary recurringJSON
	dataField(t, decodeEnvelope(t, w), "recurring", &salary)
	if salary.Kind != models.CategoryRevenue {
		t.Fatalf("kind = %q, want revenue", salary.Kind)
	}

	doJSON(t, r, http.MethodPost, fmt.Sprintf("/recurring/%d/mark-done", salary.ID), map[string]interface{}{
		"year": 2025, "month": 4,
	})

	var items []recurringJSON
	w = doJSON(t, r, http.MethodGet, "/recurring/status/2025/4", nil)
	dataField(t, decodeEnvelope(t, w), "items", &items)
	if len(items) != 1 || items[0].Status != models.RecurringReceived {
		t.Fatalf("revenue month status = %+v, want received", items)
	}
}

func intPtr(n int) *int { return &n }
