package handler

import (
	"net/http"
	"strings"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves the categories resource.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name        string  `json:"name" binding:"required,max=64"`
	Type        string  `json:"type" binding:"required,oneof=expense revenue"`
	Color       string  `json:"color" binding:"required,colorhex"`
	Icon        *string `json:"icon"`
	BudgetLimit *string `json:"budget_limit"` // decimal string, optional
}

type categoryResp struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Color       string  `json:"color"`
	Icon        *string `json:"icon"`
	BudgetLimit *string `json:"budget_limit"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	resp := categoryResp{
		ID:    cat.ID,
		Name:  cat.Name,
		Type:  cat.Type,
		Color: cat.Color,
		Icon:  cat.Icon,
	}
	if cat.BudgetLimitCents != nil {
		s := util.FormatCents(*cat.BudgetLimitCents)
		resp.BudgetLimit = &s
	}
	return resp
}

// applyCategoryReq validates the draft and copies it onto the model.
// Empty optional fields are coerced to a null sentinel, not omitted.
func (h *CategoryHandler) applyCategoryReq(c *gin.Context, req *categoryReq, cat *models.Category) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a name")
		return false
	}

	cat.Name = req.Name
	cat.Type = req.Type
	cat.Color = req.Color

	cat.Icon = nil
	if req.Icon != nil && strings.TrimSpace(*req.Icon) != "" {
		icon := strings.TrimSpace(*req.Icon)
		cat.Icon = &icon
	}

	cat.BudgetLimitCents = nil
	if req.BudgetLimit != nil && strings.TrimSpace(*req.BudgetLimit) != "" {
		cents, ok := parseAmount(c, *req.BudgetLimit)
		if !ok {
			return false
		}
		cat.BudgetLimitCents = &cents
	}
	return true
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	cat := models.Category{UserID: user.ID}
	if !h.applyCategoryReq(c, &req, &cat) {
		return
	}

	if err := h.DB.Create(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"category": toCategoryResp(&cat),
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var cat models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&cat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !h.applyCategoryReq(c, &req, &cat) {
		return
	}

	if err := h.DB.Save(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"category": toCategoryResp(&cat),
	})
}

// List returns the user's categories, optionally filtered by ?type=.
func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if t := c.Query("type"); t == models.CategoryExpense || t == models.CategoryRevenue {
		q = q.Where("type = ?", t)
	}

	var categories []models.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResp(&categories[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

// Delete removes a category. Entries referencing it keep existing with a
// null category (FK SET NULL); that cascade is the database's concern.
func (h *CategoryHandler) Delete(c *gin.Context) {
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
		Delete(&models.Category{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
