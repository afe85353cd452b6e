package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/finance"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the unified ledger. Paid transactions mutate
// account balances; all balance writes happen inside a database transaction
// so a failed request never leaves a half-applied state.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

type transactionReq struct {
	Type        string `json:"type" binding:"required,oneof=expense income transfer"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=200"`
	Status      string `json:"status" binding:"required,oneof=paid pending"`
	Date        string `json:"date" binding:"required"`

	AccountID    *uint `json:"account_id"`
	CreditCardID *uint `json:"credit_card_id"`

	FromAccountID *uint `json:"from_account_id"`
	ToAccountID   *uint `json:"to_account_id"`
}

type transactionResp struct {
	ID            uint   `json:"id"`
	Type          string `json:"type"`
	AmountCents   int64  `json:"amount_cents"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	AccountID     *uint  `json:"account_id"`
	CreditCardID  *uint  `json:"credit_card_id"`
	FromAccountID *uint  `json:"from_account_id"`
	ToAccountID   *uint  `json:"to_account_id"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:            t.ID,
		Type:          t.Type,
		AmountCents:   t.AmountCents,
		Amount:        util.FormatCents(t.AmountCents),
		Description:   t.Description,
		Status:        t.Status,
		Date:          t.OccurredAt.Format("2006-01-02"),
		AccountID:     t.AccountID,
		CreditCardID:  t.CreditCardID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
	}
}

// applyTransactionReq validates the draft and copies it onto the model.
func (h *TransactionHandler) applyTransactionReq(c *gin.Context, user *models.User, req *transactionReq, t *models.Transaction) bool {
	cents, ok := parseAmount(c, req.Amount)
	if !ok {
		return false
	}

	occurredAt, ok := parseDate(req.Date)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return false
	}

	ownsAccount := func(id uint) bool {
		var count int64
		if err := h.DB.Model(&models.Account{}).
			Where("id = ? AND user_id = ?", id, user.ID).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	}

	switch req.Type {
	case models.TxTransfer:
		if req.FromAccountID == nil || req.ToAccountID == nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "transfers need a source and a destination account")
			return false
		}
		if *req.FromAccountID == *req.ToAccountID {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "source and destination must differ")
			return false
		}
		if !ownsAccount(*req.FromAccountID) || !ownsAccount(*req.ToAccountID) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown account")
			return false
		}
		t.FromAccountID = req.FromAccountID
		t.ToAccountID = req.ToAccountID
		t.AccountID = nil
		t.CreditCardID = nil

	default: // expense / income
		if req.AccountID != nil && req.CreditCardID != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "use an account or a credit card, not both")
			return false
		}
		if req.AccountID == nil && req.CreditCardID == nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "an account or a credit card is required")
			return false
		}
		if req.AccountID != nil && !ownsAccount(*req.AccountID) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown account")
			return false
		}
		if req.CreditCardID != nil {
			var count int64
			if err := h.DB.Model(&models.CreditCard{}).
				Where("id = ? AND user_id = ?", *req.CreditCardID, user.ID).Count(&count).Error; err != nil || count == 0 {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown credit card")
				return false
			}
		}
		t.AccountID = req.AccountID
		t.CreditCardID = req.CreditCardID
		t.FromAccountID = nil
		t.ToAccountID = nil
	}

	t.Type = req.Type
	t.AmountCents = cents
	t.Description = strings.TrimSpace(req.Description)
	t.Status = req.Status
	t.OccurredAt = occurredAt
	return true
}

// applyBalanceEffect shifts account balances for a paid transaction.
// sign is +1 to apply and -1 to revert. Pending transactions and credit-card
// charges have no account effect.
func applyBalanceEffect(tx *gorm.DB, t *models.Transaction, sign int64) error {
	if t.Status != models.TxPaid {
		return nil
	}
	adjust := func(accountID uint, delta int64) error {
		return tx.Model(&models.Account{}).
			Where("id = ?", accountID).
			Update("balance_cents", gorm.Expr("balance_cents + ?", delta)).Error
	}
	switch t.Type {
	case models.TxExpense:
		if t.AccountID != nil {
			return adjust(*t.AccountID, -sign*t.AmountCents)
		}
	case models.TxIncome:
		if t.AccountID != nil {
			return adjust(*t.AccountID, sign*t.AmountCents)
		}
	case models.TxTransfer:
		if t.FromAccountID != nil {
			if err := adjust(*t.FromAccountID, -sign*t.AmountCents); err != nil {
				return err
			}
		}
		if t.ToAccountID != nil {
			return adjust(*t.ToAccountID, sign*t.AmountCents)
		}
	}
	return nil
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	t := models.Transaction{UserID: user.ID}
	if !h.applyTransactionReq(c, user, &req, &t) {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return applyBalanceEffect(tx, &t, +1)
	})
	if err != nil {
		slog.Error("create transaction", "error", err, "user_id", user.ID)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&t),
	})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var t models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	old := t
	if !h.applyTransactionReq(c, user, &req, &t) {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// revert the old effect, then apply the new one
		if err := applyBalanceEffect(tx, &old, -1); err != nil {
			return err
		}
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		return applyBalanceEffect(tx, &t, +1)
	})
	if err != nil {
		slog.Error("update transaction", "error", err, "id", t.ID, "user_id", user.ID)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&t),
	})
}

// List supports ?startDate=&endDate=&type=&status= and returns period totals
// (transfers excluded from income/expense).
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	base := h.DB.Where("user_id = ?", user.ID)

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
		base = base.Where("occurred_at < ?", t.Add(24*time.Hour))
	}
	if v := c.Query("type"); v == models.TxExpense || v == models.TxIncome || v == models.TxTransfer {
		base = base.Where("type = ?", v)
	}
	if v := c.Query("status"); v == models.TxPaid || v == models.TxPending {
		base = base.Where("status = ?", v)
	}

	var txs []models.Transaction
	if err := base.Order("occurred_at DESC, id DESC").Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	totals := finance.SummarizePeriod(txs, false)

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
		"summary": gin.H{
			"income_cents":  totals.IncomeCents,
			"income":        util.FormatCents(totals.IncomeCents),
			"expense_cents": totals.ExpenseCents,
			"expense":       util.FormatCents(totals.ExpenseCents),
			"balance_cents": totals.BalanceCents,
			"balance":       util.FormatCents(totals.BalanceCents),
		},
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var t models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyBalanceEffect(tx, &t, -1); err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	if err != nil {
		slog.Error("delete transaction", "error", err, "id", t.ID, "user_id", user.ID)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
