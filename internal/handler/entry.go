package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EntryHandler serves one-off expenses or revenues. The same handler backs
// both resources, parameterized by Kind, since the two differ only in
// direction.
type EntryHandler struct {
	DB   *gorm.DB
	Kind string // models.CategoryExpense or models.CategoryRevenue
}

func NewEntryHandler(db *gorm.DB, kind string) *EntryHandler {
	return &EntryHandler{DB: db, Kind: kind}
}

type entryReq struct {
	CategoryID    *uint  `json:"category_id"`
	Amount        string `json:"amount" binding:"required"`
	Description   string `json:"description" binding:"required,max=200"`
	PaymentMethod string `json:"payment_method" binding:"max=32"`
	Date          string `json:"date" binding:"required"`
}

type entryResp struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"kind"`
	CategoryID    *uint     `json:"category_id"`
	AmountCents   int64     `json:"amount_cents"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"payment_method"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toEntryResp(e *models.Entry) entryResp {
	return entryResp{
		ID:            e.ID,
		Kind:          e.Kind,
		CategoryID:    e.CategoryID,
		AmountCents:   e.AmountCents,
		Amount:        util.FormatCents(e.AmountCents),
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Date:          e.OccurredAt.Format("2006-01-02"),
		CreatedAt:     e.CreatedAt,
	}
}

// applyEntryReq validates the draft and copies it onto the model.
func (h *EntryHandler) applyEntryReq(c *gin.Context, user *models.User, req *entryReq, entry *models.Entry) bool {
	cents, ok := parseAmount(c, req.Amount)
	if !ok {
		return false
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a description")
		return false
	}

	occurredAt, ok := parseDate(req.Date)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return false
	}

	// the category, when given, must belong to the user and match the kind
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

	entry.Kind = h.Kind
	entry.CategoryID = req.CategoryID
	entry.AmountCents = cents
	entry.Description = req.Description
	entry.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	entry.OccurredAt = occurredAt
	return true
}

func (h *EntryHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	entry := models.Entry{UserID: user.ID}
	if !h.applyEntryReq(c, user, &req, &entry) {
		return
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"entry": toEntryResp(&entry),
	})
}

func (h *EntryHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var entry models.Entry
	if err := h.DB.Where("id = ? AND user_id = ? AND kind = ?", id, user.ID, h.Kind).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !h.applyEntryReq(c, user, &req, &entry) {
		return
	}

	if err := h.DB.Save(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"entry": toEntryResp(&entry),
	})
}

// List supports ?startDate=&endDate=&categoryId= filters and returns the
// filtered items together with their total.
func (h *EntryHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	base := h.DB.Model(&models.Entry{}).Where("user_id = ? AND kind = ?", user.ID, h.Kind)

	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid startDate, expected YYYY-MM-DD")
			return
		}
		base = base.Where("occurred_at >= ?", t)
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid endDate, expected YYYY-MM-DD")
			return
		}
		// end date is inclusive: < end+1 day
		base = base.Where("occurred_at < ?", t.Add(24*time.Hour))
	}
	if v := c.Query("categoryId"); v != "" {
		catID, err := strconv.Atoi(v)
		if err != nil || catID <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid categoryId")
			return
		}
		base = base.Where("category_id = ?", catID)
	}

	var entries []models.Entry
	if err := base.Session(&gorm.Session{}).
		Order("occurred_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]entryResp, 0, len(entries))
	var totalCents int64
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
		totalCents += entries[i].AmountCents
	}

	util.Success(c, util.Response{
		"items":       items,
		"total":       len(items),
		"total_cents": totalCents,
		"total_sum":   util.FormatCents(totalCents),
	})
}

func (h *EntryHandler) Delete(c *gin.Context) {
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
		Delete(&models.Entry{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
