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

// OpportunityHandler serves the sales pipeline resource.
type OpportunityHandler struct {
	DB *gorm.DB
}

func NewOpportunityHandler(db *gorm.DB) *OpportunityHandler {
	return &OpportunityHandler{DB: db}
}

type opportunityReq struct {
	ClientName  string `json:"client_name" binding:"required,max=128"`
	Status      string `json:"status" binding:"required,oneof=negotiation formal_agreement signed_contract"`
	Probability int    `json:"probability" binding:"min=0,max=100"`

	HasSetup   bool   `json:"has_setup"`
	SetupValue string `json:"setup_value"`

	HasRecurring   bool   `json:"has_recurring"`
	MonthlyValue   string `json:"monthly_value"`
	DurationMonths int    `json:"duration_months" binding:"min=0"`

	HasBilling        bool    `json:"has_billing"`
	MonthlyUSD        string  `json:"monthly_usd"`
	TotalDiscountPct  float64 `json:"total_discount_pct" binding:"min=0,max=100"`
	ClientDiscountPct float64 `json:"client_discount_pct" binding:"min=0,max=100"`
	FxRate            float64 `json:"fx_rate" binding:"min=0"`
}

type opportunityResp struct {
	ID          uint   `json:"id"`
	ClientName  string `json:"client_name"`
	Status      string `json:"status"`
	Probability int    `json:"probability"`

	HasSetup        bool   `json:"has_setup"`
	SetupValueCents int64  `json:"setup_value_cents"`
	SetupValue      string `json:"setup_value"`

	HasRecurring      bool   `json:"has_recurring"`
	MonthlyValueCents int64  `json:"monthly_value_cents"`
	MonthlyValue      string `json:"monthly_value"`
	DurationMonths    int    `json:"duration_months"`

	HasBilling        bool    `json:"has_billing"`
	MonthlyUSDCents   int64   `json:"monthly_usd_cents"`
	MonthlyUSD        string  `json:"monthly_usd"`
	TotalDiscountPct  float64 `json:"total_discount_pct"`
	ClientDiscountPct float64 `json:"client_discount_pct"`
	FxRate            float64 `json:"fx_rate"`

	TotalValueCents int64  `json:"total_value_cents"`
	TotalValue      string `json:"total_value"`
}

func opportunityComponents(o *models.Opportunity) finance.ContractComponents {
	return finance.ContractComponents{
		HasSetup:          o.HasSetup,
		SetupValueCents:   o.SetupValueCents,
		HasRecurring:      o.HasRecurring,
		MonthlyValueCents: o.MonthlyValueCents,
		DurationMonths:    o.DurationMonths,
		HasBilling:        o.HasBilling,
		MonthlyUSDCents:   o.MonthlyUSDCents,
		TotalDiscountPct:  o.TotalDiscountPct,
		ClientDiscountPct: o.ClientDiscountPct,
		FxRate:            o.FxRate,
	}
}

func toOpportunityResp(o *models.Opportunity) opportunityResp {
	total := finance.ContractTotal(opportunityComponents(o))
	return opportunityResp{
		ID:                o.ID,
		ClientName:        o.ClientName,
		Status:            o.Status,
		Probability:       o.Probability,
		HasSetup:          o.HasSetup,
		SetupValueCents:   o.SetupValueCents,
		SetupValue:        util.FormatCents(o.SetupValueCents),
		HasRecurring:      o.HasRecurring,
		MonthlyValueCents: o.MonthlyValueCents,
		MonthlyValue:      util.FormatCents(o.MonthlyValueCents),
		DurationMonths:    o.DurationMonths,
		HasBilling:        o.HasBilling,
		MonthlyUSDCents:   o.MonthlyUSDCents,
		MonthlyUSD:        util.FormatCents(o.MonthlyUSDCents),
		TotalDiscountPct:  o.TotalDiscountPct,
		ClientDiscountPct: o.ClientDiscountPct,
		FxRate:            o.FxRate,
		TotalValueCents:   total,
		TotalValue:        util.FormatCents(total),
	}
}

// applyOpportunityReq validates the draft and copies it onto the model.
// Component amounts are only parsed while their toggle is on; a disabled
// component keeps whatever value was stored before.
func (h *OpportunityHandler) applyOpportunityReq(c *gin.Context, req *opportunityReq, o *models.Opportunity) bool {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter the client name")
		return false
	}

	o.ClientName = req.ClientName
	o.Status = req.Status
	o.Probability = req.Probability
	// a signed contract is a certainty
	if o.Status == models.OpportunitySignedContract {
		o.Probability = 100
	}

	o.HasSetup = req.HasSetup
	if req.HasSetup {
		cents, ok := parseAmount(c, req.SetupValue)
		if !ok {
			return false
		}
		o.SetupValueCents = cents
	}

	o.HasRecurring = req.HasRecurring
	if req.HasRecurring {
		cents, ok := parseAmount(c, req.MonthlyValue)
		if !ok {
			return false
		}
		if req.DurationMonths < 1 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "recurrence needs a duration in months")
			return false
		}
		o.MonthlyValueCents = cents
		o.DurationMonths = req.DurationMonths
	}

	o.HasBilling = req.HasBilling
	if req.HasBilling {
		cents, ok := parseAmount(c, req.MonthlyUSD)
		if !ok {
			return false
		}
		if req.TotalDiscountPct < req.ClientDiscountPct {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "client discount cannot exceed the total discount")
			return false
		}
		if req.FxRate <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "FX rate must be positive")
			return false
		}
		o.MonthlyUSDCents = cents
		o.TotalDiscountPct = req.TotalDiscountPct
		o.ClientDiscountPct = req.ClientDiscountPct
		o.FxRate = req.FxRate
	}
	return true
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req opportunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	o := models.Opportunity{UserID: user.ID}
	if !h.applyOpportunityReq(c, &req, &o) {
		return
	}

	if err := h.DB.Create(&o).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"opportunity": toOpportunityResp(&o),
	})
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req opportunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var o models.Opportunity
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&o).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "opportunity not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if !h.applyOpportunityReq(c, &req, &o) {
		return
	}

	if err := h.DB.Save(&o).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save, please retry")
		return
	}

	util.Success(c, util.Response{
		"opportunity": toOpportunityResp(&o),
	})
}

func (h *OpportunityHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
	}

	var opportunities []models.Opportunity
	if err := q.Order("created_at DESC").Find(&opportunities).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]opportunityResp, 0, len(opportunities))
	var pipelineCents int64
	for i := range opportunities {
		resp := toOpportunityResp(&opportunities[i])
		pipelineCents += resp.TotalValueCents
		items = append(items, resp)
	}

	util.Success(c, util.Response{
		"items":          items,
		"total":          len(items),
		"pipeline_cents": pipelineCents,
		"pipeline":       util.FormatCents(pipelineCents),
	})
}

func (h *OpportunityHandler) Delete(c *gin.Context) {
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
		Delete(&models.Opportunity{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
