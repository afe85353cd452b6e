package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler aggregates the month overview.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

type dayStat struct {
	Day          int    `json:"day"`
	ExpenseCents int64  `json:"expense_cents"`
	RevenueCents int64  `json:"revenue_cents"`
	Expense      string `json:"expense"`
	Revenue      string `json:"revenue"`
}

type categoryStat struct {
	CategoryID  *uint   `json:"category_id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Kind        string  `json:"kind"`
	TotalCents  int64   `json:"total_cents"`
	Total       string  `json:"total"`
	BudgetCents *int64  `json:"budget_cents"`
	BudgetUsage *string `json:"budget_usage"` // percent, only when a budget is set
}

// Monthly answers ?year=&month= (defaults to the current month) with per-day
// totals, per-category totals and the month balance.
func (h *DashboardHandler) Monthly(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1970 || n > 2200 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
			return
		}
		month = n
	}

	// entry dates are parsed in UTC, so the window must be UTC too or
	// first-of-month entries fall into the neighbouring month
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var entries []models.Entry
	if err := h.DB.
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", user.ID, start, end).
		Order("occurred_at ASC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	daysInMonth := end.AddDate(0, 0, -1).Day()
	days := make([]dayStat, daysInMonth)
	for i := range days {
		days[i].Day = i + 1
	}

	byCategory := make(map[uint]*categoryStat)
	var uncatExpense, uncatRevenue categoryStat
	uncatExpense = categoryStat{Name: "uncategorized", Kind: models.CategoryExpense}
	uncatRevenue = categoryStat{Name: "uncategorized", Kind: models.CategoryRevenue}

	var expenseCents, revenueCents int64
	for i := range entries {
		e := &entries[i]
		d := &days[e.OccurredAt.Day()-1]
		switch e.Kind {
		case models.CategoryExpense:
			expenseCents += e.AmountCents
			d.ExpenseCents += e.AmountCents
		case models.CategoryRevenue:
			revenueCents += e.AmountCents
			d.RevenueCents += e.AmountCents
		}

		if e.CategoryID == nil {
			if e.Kind == models.CategoryExpense {
				uncatExpense.TotalCents += e.AmountCents
			} else {
				uncatRevenue.TotalCents += e.AmountCents
			}
			continue
		}
		stat, seen := byCategory[*e.CategoryID]
		if !seen {
			stat = &categoryStat{CategoryID: e.CategoryID, Kind: e.Kind}
			byCategory[*e.CategoryID] = stat
		}
		stat.TotalCents += e.AmountCents
	}

	// second pass fills in names, colors and budget usage
	if len(byCategory) > 0 {
		ids := make([]uint, 0, len(byCategory))
		for id := range byCategory {
			ids = append(ids, id)
		}
		var cats []models.Category
		if err := h.DB.Where("user_id = ? AND id IN ?", user.ID, ids).Find(&cats).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		for i := range cats {
			cat := &cats[i]
			stat, seen := byCategory[cat.ID]
			if !seen {
				continue
			}
			stat.Name = cat.Name
			stat.Color = cat.Color
			if cat.BudgetLimitCents != nil && *cat.BudgetLimitCents > 0 {
				stat.BudgetCents = cat.BudgetLimitCents
				usage := strconv.FormatFloat(
					float64(stat.TotalCents)/float64(*cat.BudgetLimitCents)*100, 'f', 1, 64)
				stat.BudgetUsage = &usage
			}
		}
	}

	categories := make([]categoryStat, 0, len(byCategory)+2)
	for _, stat := range byCategory {
		stat.Total = util.FormatCents(stat.TotalCents)
		categories = append(categories, *stat)
	}
	if uncatExpense.TotalCents > 0 {
		uncatExpense.Total = util.FormatCents(uncatExpense.TotalCents)
		categories = append(categories, uncatExpense)
	}
	if uncatRevenue.TotalCents > 0 {
		uncatRevenue.Total = util.FormatCents(uncatRevenue.TotalCents)
		categories = append(categories, uncatRevenue)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].TotalCents > categories[j].TotalCents
	})

	for i := range days {
		days[i].Expense = util.FormatCents(days[i].ExpenseCents)
		days[i].Revenue = util.FormatCents(days[i].RevenueCents)
	}

	balanceCents := revenueCents - expenseCents
	util.Success(c, util.Response{
		"year":          year,
		"month":         month,
		"days":          days,
		"categories":    categories,
		"expense_cents": expenseCents,
		"expense":       util.FormatCents(expenseCents),
		"revenue_cents": revenueCents,
		"revenue":       util.FormatCents(revenueCents),
		"balance_cents": balanceCents,
		"balance":       util.FormatCents(balanceCents),
	})
}
