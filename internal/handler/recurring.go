package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/finance"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecurringHandler serves recurring expenses or revenues, parameterized by
// Kind like EntryHandler. A recurring entry is a monthly template; its
// per-month instances live in recurring_statuses and default to pending.
type RecurringHandler struct {
	DB   *gorm.DB
	Kind string
}

func NewRecurringHandler(db *gorm.DB, kind string) *RecurringHandler {
	return &RecurringHandler{DB: db, Kind: kind}
}

// doneStatus is "paid" for expenses and "received" for revenues.
func (h *RecurringHandler) doneStatus() string {
	if h.Kind == models.CategoryRevenue {
		return models.RecurringReceived
	}
	return models.RecurringPaid
}

type recurringReq struct {
	CategoryID   *uint  `json:"category_id"`
	CreditCardID *uint  `json:"credit_card_id"`
	Amount       string `json:"amount" binding:"required"`
	Description  string `json:"description" binding:"required,max=200"`
	DueDay       int    `json:"due_day" binding:"required,monthday"`
	Active       *bool  `json:"active"`
	StartDate    string `json:"start_date" binding:"required"`

	IsInstallment      bool `json:"is_installment"`
	TotalInstallments  *int `json:"total_installments"`
	CurrentInstallment *int `json:"current_installment"`
}

type recurringResp struct {
	ID           uint   `json:"id"`
	Kind         string `json:"kind"`
	CategoryID   *uint  `json:"category_id"`
	CreditCardID *uint  `json:"credit_card_id"`
	AmountCents  int64  `json:"amount_cents"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	DueDay       int    `json:"due_day"`
	Active       bool   `json:"active"`
	StartDate    string `json:"start_date"`

	IsInstallment      bool    `json:"is_installment"`
	TotalInstallments  *int    `json:"total_installments"`
	CurrentInstallment *int    `json:"current_installment"`
	EndDate            *string `json:"end_date"`
}

func toRecurringResp(r *models.RecurringEntry) recurringResp {
	resp := recurringResp{
		ID:                 r.ID,
		Kind:               r.Kind,
		CategoryID:         r.CategoryID,
		CreditCardID:       r.CreditCardID,
		AmountCents:        r.AmountCents,
		Amount:             util.FormatCents(r.AmountCents),
		Description:        r.Description,
		DueDay:             r.DueDay,
		Active:             r.Active,
		StartDate:          r.StartDate.Format("2006-01-02"),
		IsInstallment:      r.IsInstallment,
		TotalInstallments:  r.TotalInstallments,
		CurrentInstallment: r.CurrentInstallment,
	}
	if r.EndDate != nil {
		s := r.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}

// applyRecurringReq validates the draft and copies it onto the model,
// deriving the end date for installment plans.
func (h *RecurringHandler) applyRecurringReq(c *gin.Context, user *models.User, req *recurringReq, r *models.RecurringEntry) bool {
	cents, ok := parseAmount(c, req.Amount)
	if !ok {
		return false
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a description")
		return false
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date, expected YYYY-MM-DD")
		return false
	}

	if req.CategoryID != nil {
		var count int64
		if err := h.DB.Model(&models.Category{}).
			Where("id = ? AND user_id = ? AND type = ?", *req.CategoryID, user.ID, h.Kind).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return false
		}
		if count == 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown category")
			return false
		}
	}
	if req.CreditCardID != nil {
		var count int64
		if err := h.DB.Model(&models.CreditCard{}).
			Where("id = ? AND user_id = ?", *req.CreditCardID, user.ID).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return false
		}
		if count == 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown credit card")
			return false
		}
	}

	r.Kind = h.Kind
	r.CategoryID = req.CategoryID
	r.CreditCardID = req.CreditCardID
	r.AmountCents = cents
	r.Description = req.Description
	r.DueDay = req.DueDay
	r.StartDate = startDate
	r.Active = true
	if req.Active != nil {
		r.Active = *req.Active
	}

	r.IsInstallment = req.IsInstallment
	if req.IsInstallment {
		total := 0
		if req.TotalInstallments != nil {
			total = *req.TotalInstallments
		}
		if total < 2 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "installment plans need at least 2 installments")
			return false
		}
		current := 1
		if req.CurrentInstallment != nil {
			current = *req.CurrentInstallment
		}
		if current < 1 || current > total {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current installment out of range")
			return false
		}
		r.TotalInstallments = &total
		r.CurrentInstallment = &current
		end := finance.InstallmentEnd(startDate, req.DueDay, total)
		r.EndDate = &end
	} else {
		r.TotalInstallments = nil
		r.CurrentInstallment = nil
		r.EndDate = nil
	}
	return true
}

func (h *RecurringHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req recurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	r := models.RecurringEntry{UserID: user.ID}
	if !h.applyRecurringReq(c, user, &req, &r) {
		return
	}

	if err := h.DB.Create(&r).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"recurring": toRecurringResp(&r),
	})
}

func (h *RecurringHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req recurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var r models.RecurringEntry
	if err := h.DB.Where("id = ? AND user_id = ? AND kind = ?", id, user.ID, h.Kind).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !h.applyRecurringReq(c, user, &req, &r) {
		return
	}

	if err := h.DB.Save(&r).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"recurring": toRecurringResp(&r),
	})
}

func (h *RecurringHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	q := h.DB.Where("user_id = ? AND kind = ?", user.ID, h.Kind)
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid active flag")
			return
		}
		q = q.Where("active = ?", active)
	}

	var entries []models.RecurringEntry
	if err := q.Order("due_day ASC, id ASC").Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]recurringResp, 0, len(entries))
	for i := range entries {
		items = append(items, toRecurringResp(&entries[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *RecurringHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.
		Where("id = ? AND user_id = ? AND kind = ?", id, user.ID, h.Kind).
		Delete(&models.RecurringEntry{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// ---------- per-month status ----------

type recurringStatusResp struct {
	recurringResp
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Status string `json:"status"`
}

// MonthStatus fans the active definitions out into instances for
// /status/:year/:month. A definition whose start/end window excludes the
// month is omitted; instances with no status row are pending.
func (h *RecurringHandler) MonthStatus(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 2200 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
		return
	}

	var entries []models.RecurringEntry
	if err := h.DB.
		Where("user_id = ? AND kind = ? AND active = ?", user.ID, h.Kind, true).
		Order("due_day ASC, id ASC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	ids := make([]uint, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].ID)
	}

	statusByID := make(map[uint]string)
	if len(ids) > 0 {
		var statuses []models.RecurringStatus
		if err := h.DB.
			Where("recurring_id IN ? AND year = ? AND month = ?", ids, year, month).
			Find(&statuses).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		for i := range statuses {
			statusByID[statuses[i].RecurringID] = statuses[i].Status
		}
	}

	items := make([]recurringStatusResp, 0, len(entries))
	var pendingCents, doneCents int64
	for i := range entries {
		r := &entries[i]
		if !finance.OccursIn(r.StartDate, r.EndDate, year, month) {
			continue
		}
		status, found := statusByID[r.ID]
		if !found {
			status = models.RecurringPending
		}
		if status == models.RecurringPending {
			pendingCents += r.AmountCents
		} else if status == h.doneStatus() {
			doneCents += r.AmountCents
		}
		items = append(items, recurringStatusResp{
			recurringResp: toRecurringResp(r),
			Year:          year,
			Month:         month,
			Status:        status,
		})
	}

	util.Success(c, util.Response{
		"items":         items,
		"total":         len(items),
		"pending_cents": pendingCents,
		"done_cents":    doneCents,
	})
}

type monthRef struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// setMonthStatus upserts the (recurring, year, month) status row. Repeating
// the same operation leaves the row unchanged.
func (h *RecurringHandler) setMonthStatus(c *gin.Context, status string) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var ref monthRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var r models.RecurringEntry
	if err := h.DB.Where("id = ? AND user_id = ? AND kind = ?", id, user.ID, h.Kind).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !finance.OccursIn(r.StartDate, r.EndDate, ref.Year, ref.Month) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no occurrence in that month")
		return
	}

	row := models.RecurringStatus{
		RecurringID: r.ID,
		Year:        ref.Year,
		Month:       ref.Month,
	}
	err := h.DB.
		Where(models.RecurringStatus{RecurringID: r.ID, Year: ref.Year, Month: ref.Month}).
		Assign(map[string]interface{}{"status": status, "updated_at": time.Now()}).
		FirstOrCreate(&row).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"recurring_id": r.ID,
		"year":         ref.Year,
		"month":        ref.Month,
		"status":       status,
	})
}

// MarkDone marks the month instance paid (expenses) or received (revenues).
func (h *RecurringHandler) MarkDone(c *gin.Context) {
	h.setMonthStatus(c, h.doneStatus())
}

// Skip marks the month instance skipped.
func (h *RecurringHandler) Skip(c *gin.Context) {
	h.setMonthStatus(c, models.RecurringSkipped)
}
