package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/finance"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreditCardHandler serves the credit-cards resource.
type CreditCardHandler struct {
	DB *gorm.DB
}

func NewCreditCardHandler(db *gorm.DB) *CreditCardHandler {
	return &CreditCardHandler{DB: db}
}

type creditCardReq struct {
	Name       string `json:"name" binding:"required,max=64"`
	Limit      string `json:"limit" binding:"required"`
	ClosingDay int    `json:"closing_day" binding:"required,monthday"`
	DueDay     int    `json:"due_day" binding:"required,monthday"`
	Color      string `json:"color" binding:"omitempty,colorhex"`
}

type creditCardResp struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	LimitCents          int64  `json:"limit_cents"`
	Limit               string `json:"limit"`
	ClosingDay          int    `json:"closing_day"`
	DueDay              int    `json:"due_day"`
	Color               string `json:"color"`
	CurrentInvoiceCents int64  `json:"current_invoice_cents"`
	CurrentInvoice      string `json:"current_invoice"`
}

// currentInvoice sums the card's expense transactions inside the open
// invoice window.
func (h *CreditCardHandler) currentInvoice(card *models.CreditCard, now time.Time) (int64, error) {
	from, to := finance.InvoiceWindow(now, card.ClosingDay)

	var total int64
	err := h.DB.Model(&models.Transaction{}).
		Where("credit_card_id = ? AND type = ? AND occurred_at >= ? AND occurred_at < ?",
			card.ID, models.TxExpense, from, to.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (h *CreditCardHandler) toResp(card *models.CreditCard) creditCardResp {
	invoice, err := h.currentInvoice(card, time.Now())
	if err != nil {
		invoice = 0
	}
	return creditCardResp{
		ID:                  card.ID,
		Name:                card.Name,
		LimitCents:          card.LimitCents,
		Limit:               util.FormatCents(card.LimitCents),
		ClosingDay:          card.ClosingDay,
		DueDay:              card.DueDay,
		Color:               card.Color,
		CurrentInvoiceCents: invoice,
		CurrentInvoice:      util.FormatCents(invoice),
	}
}

func (h *CreditCardHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req creditCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	limitCents, ok := parseAmount(c, req.Limit)
	if !ok {
		return
	}

	card := models.CreditCard{
		UserID:     user.ID,
		Name:       strings.TrimSpace(req.Name),
		LimitCents: limitCents,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      req.Color,
	}

	if err := h.DB.Create(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"credit_card": h.toResp(&card),
	})
}

func (h *CreditCardHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req creditCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	limitCents, ok := parseAmount(c, req.Limit)
	if !ok {
		return
	}

	var card models.CreditCard
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "credit card not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	card.Name = strings.TrimSpace(req.Name)
	card.LimitCents = limitCents
	card.ClosingDay = req.ClosingDay
	card.DueDay = req.DueDay
	card.Color = req.Color

	if err := h.DB.Save(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"credit_card": h.toResp(&card),
	})
}

func (h *CreditCardHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var cards []models.CreditCard
	if err := h.DB.Where("user_id = ?", user.ID).Order("name ASC").Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]creditCardResp, 0, len(cards))
	for i := range cards {
		items = append(items, h.toResp(&cards[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *CreditCardHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.CreditCard{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
