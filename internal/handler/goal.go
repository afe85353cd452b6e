package handler

import (
	"net/http"
	"strings"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/finance"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler serves yearly goals with optional quarterly targets.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type goalReq struct {
	Year         int     `json:"year" binding:"required,min=1970,max=2200"`
	AnnualTarget string  `json:"annual_target" binding:"required"`
	Q1           *string `json:"q1"`
	Q2           *string `json:"q2"`
	Q3           *string `json:"q3"`
	Q4           *string `json:"q4"`
}

type goalResp struct {
	ID           uint    `json:"id"`
	Year         int     `json:"year"`
	AnnualTarget string  `json:"annual_target"`
	Q1           *string `json:"q1"`
	Q2           *string `json:"q2"`
	Q3           *string `json:"q3"`
	Q4           *string `json:"q4"`

	QuarterSumCents int64  `json:"quarter_sum_cents"`
	QuarterSum      string `json:"quarter_sum"`
	DifferenceCents int64  `json:"difference_cents"`
	Difference      string `json:"difference"`
	Balanced        bool   `json:"balanced"`
}

func fmtOptCents(v *int64) *string {
	if v == nil {
		return nil
	}
	s := util.FormatCents(*v)
	return &s
}

func toGoalResp(g *models.Goal) goalResp {
	rec := finance.ReconcileGoal(g.AnnualTargetCents, [4]*int64{g.Q1Cents, g.Q2Cents, g.Q3Cents, g.Q4Cents})
	return goalResp{
		ID:              g.ID,
		Year:            g.Year,
		AnnualTarget:    util.FormatCents(g.AnnualTargetCents),
		Q1:              fmtOptCents(g.Q1Cents),
		Q2:              fmtOptCents(g.Q2Cents),
		Q3:              fmtOptCents(g.Q3Cents),
		Q4:              fmtOptCents(g.Q4Cents),
		QuarterSumCents: rec.QuarterSumCents,
		QuarterSum:      util.FormatCents(rec.QuarterSumCents),
		DifferenceCents: rec.DifferenceCents,
		Difference:      util.FormatCents(rec.DifferenceCents),
		Balanced:        rec.Balanced,
	}
}

// applyGoalReq validates the draft and copies it onto the model. A quarter
// mismatch against the annual target is reported in the response, never
// rejected here.
func (h *GoalHandler) applyGoalReq(c *gin.Context, req *goalReq, g *models.Goal) bool {
	annual, ok := parseAmount(c, req.AnnualTarget)
	if !ok {
		return false
	}
	g.Year = req.Year
	g.AnnualTargetCents = annual

	parseQuarter := func(s *string) (*int64, bool) {
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil, true
		}
		cents, ok := parseAmount(c, *s)
		if !ok {
			return nil, false
		}
		return &cents, true
	}

	var okQ bool
	if g.Q1Cents, okQ = parseQuarter(req.Q1); !okQ {
		return false
	}
	if g.Q2Cents, okQ = parseQuarter(req.Q2); !okQ {
		return false
	}
	if g.Q3Cents, okQ = parseQuarter(req.Q3); !okQ {
		return false
	}
	if g.Q4Cents, okQ = parseQuarter(req.Q4); !okQ {
		return false
	}
	return true
}

func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Goal{}).
		Where("user_id = ? AND year = ?", user.ID, req.Year).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "a goal for that year already exists")
		return
	}

	g := models.Goal{UserID: user.ID}
	if !h.applyGoalReq(c, &req, &g) {
		return
	}

	if err := h.DB.Create(&g).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"goal": toGoalResp(&g),
	})
}

func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var g models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !h.applyGoalReq(c, &req, &g) {
		return
	}

	if err := h.DB.Save(&g).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"goal": toGoalResp(&g),
	})
}

func (h *GoalHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).Order("year DESC").Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]goalResp, 0, len(goals))
	for i := range goals {
		items = append(items, toGoalResp(&goals[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *GoalHandler) Delete(c *gin.Context) {
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
		Delete(&models.Goal{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
