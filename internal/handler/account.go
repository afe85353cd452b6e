package handler

import (
	"net/http"
	"strings"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler serves the accounts resource.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type accountReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Institution string `json:"institution" binding:"max=64"`
	Type        string `json:"type" binding:"required,oneof=checking investment cash"`
	Color       string `json:"color" binding:"omitempty,colorhex"`
	// opening balance, only honored on create; may be negative ("-12.34")
	OpeningBalance *string `json:"opening_balance"`
}

type accountResp struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Institution  string `json:"institution"`
	Type         string `json:"type"`
	BalanceCents int64  `json:"balance_cents"`
	Balance      string `json:"balance"`
	Color        string `json:"color"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:           a.ID,
		Name:         a.Name,
		Institution:  a.Institution,
		Type:         a.Type,
		BalanceCents: a.BalanceCents,
		Balance:      util.FormatCents(a.BalanceCents),
		Color:        a.Color,
	}
}

func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	account := models.Account{
		UserID:      user.ID,
		Name:        strings.TrimSpace(req.Name),
		Institution: strings.TrimSpace(req.Institution),
		Type:        req.Type,
		Color:       req.Color,
	}

	if req.OpeningBalance != nil && strings.TrimSpace(*req.OpeningBalance) != "" {
		s := strings.TrimSpace(*req.OpeningBalance)
		neg := strings.HasPrefix(s, "-")
		cents, err := util.ParseDecimalToCents(strings.TrimPrefix(s, "-"))
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid opening balance")
			return
		}
		if neg {
			cents = -cents
		}
		account.BalanceCents = cents
	}

	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

// Update changes descriptive fields only. The balance is owned by
// transaction side effects and is never written here.
func (h *AccountHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	account.Name = strings.TrimSpace(req.Name)
	account.Institution = strings.TrimSpace(req.Institution)
	account.Type = req.Type
	account.Color = req.Color

	if err := h.DB.Save(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

func (h *AccountHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var accounts []models.Account
	if err := h.DB.Where("user_id = ?", user.ID).Order("name ASC").Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]accountResp, 0, len(accounts))
	var totalCents int64
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
		totalCents += accounts[i].BalanceCents
	}

	util.Success(c, util.Response{
		"items":       items,
		"total":       len(items),
		"total_cents": totalCents,
	})
}

func (h *AccountHandler) Delete(c *gin.Context) {
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
		Delete(&models.Account{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
