package handler

import (
	"net/http"
	"strings"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatrimonyHandler serves assets and liabilities.
type PatrimonyHandler struct {
	DB *gorm.DB
}

func NewPatrimonyHandler(db *gorm.DB) *PatrimonyHandler {
	return &PatrimonyHandler{DB: db}
}

type patrimonyReq struct {
	Kind          string  `json:"kind" binding:"required,oneof=asset liability"`
	Title         string  `json:"title" binding:"required,max=128"`
	Type          string  `json:"type" binding:"required,max=32"`
	CurrentValue  string  `json:"current_value" binding:"required"`
	OriginalValue *string `json:"original_value"` // liabilities only
}

type patrimonyResp struct {
	ID                uint    `json:"id"`
	Kind              string  `json:"kind"`
	Title             string  `json:"title"`
	Type              string  `json:"type"`
	CurrentValueCents int64   `json:"current_value_cents"`
	CurrentValue      string  `json:"current_value"`
	OriginalValue     *string `json:"original_value"`
	AmountPaid        *string `json:"amount_paid"` // liabilities: original - current
}

func toPatrimonyResp(p *models.PatrimonyItem) patrimonyResp {
	resp := patrimonyResp{
		ID:                p.ID,
		Kind:              p.Kind,
		Title:             p.Title,
		Type:              p.Type,
		CurrentValueCents: p.CurrentValueCents,
		CurrentValue:      util.FormatCents(p.CurrentValueCents),
	}
	if p.OriginalValueCents != nil {
		orig := util.FormatCents(*p.OriginalValueCents)
		paid := util.FormatCents(*p.OriginalValueCents - p.CurrentValueCents)
		resp.OriginalValue = &orig
		resp.AmountPaid = &paid
	}
	return resp
}

// applyPatrimonyReq validates the draft, enforcing current <= original for
// liabilities, and copies it onto the model.
func (h *PatrimonyHandler) applyPatrimonyReq(c *gin.Context, req *patrimonyReq, p *models.PatrimonyItem) bool {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a title")
		return false
	}

	current, ok := parseAmount(c, req.CurrentValue)
	if !ok {
		return false
	}

	p.Kind = req.Kind
	p.Title = req.Title
	p.Type = strings.TrimSpace(req.Type)
	p.CurrentValueCents = current
	p.OriginalValueCents = nil

	if req.Kind == models.PatrimonyLiability {
		if req.OriginalValue == nil || strings.TrimSpace(*req.OriginalValue) == "" {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "liabilities need an original value")
			return false
		}
		original, ok := parseAmount(c, *req.OriginalValue)
		if !ok {
			return false
		}
		if current > original {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current value cannot exceed the original value")
			return false
		}
		p.OriginalValueCents = &original
	}
	return true
}

func (h *PatrimonyHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req patrimonyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	p := models.PatrimonyItem{UserID: user.ID}
	if !h.applyPatrimonyReq(c, &req, &p) {
		return
	}

	if err := h.DB.Create(&p).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"item": toPatrimonyResp(&p),
	})
}

func (h *PatrimonyHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req patrimonyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var p models.PatrimonyItem
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "item not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !h.applyPatrimonyReq(c, &req, &p) {
		return
	}

	if err := h.DB.Save(&p).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"item": toPatrimonyResp(&p),
	})
}

// List returns items (optionally one kind) plus the net worth summary:
// assets - liabilities at current values.
func (h *PatrimonyHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if v := c.Query("kind"); v == models.PatrimonyAsset || v == models.PatrimonyLiability {
		q = q.Where("kind = ?", v)
	}

	var itemsDB []models.PatrimonyItem
	if err := q.Order("title ASC").Find(&itemsDB).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]patrimonyResp, 0, len(itemsDB))
	var assetCents, liabilityCents int64
	for i := range itemsDB {
		p := &itemsDB[i]
		if p.Kind == models.PatrimonyAsset {
			assetCents += p.CurrentValueCents
		} else {
			liabilityCents += p.CurrentValueCents
		}
		items = append(items, toPatrimonyResp(p))
	}

	netCents := assetCents - liabilityCents
	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
		"summary": gin.H{
			"assets_cents":      assetCents,
			"assets":            util.FormatCents(assetCents),
			"liabilities_cents": liabilityCents,
			"liabilities":       util.FormatCents(liabilityCents),
			"net_worth_cents":   netCents,
			"net_worth":         util.FormatCents(netCents),
		},
	})
}

func (h *PatrimonyHandler) Delete(c *gin.Context) {
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
		Delete(&models.PatrimonyItem{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
