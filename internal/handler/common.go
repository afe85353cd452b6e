package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// requireUser returns the authenticated user or writes a 401 and returns
// ok=false. Every protected handler starts with this guard.
func requireUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	return user, true
}

// pathID parses the :id route parameter. Writes a 400 on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts the date layouts clients actually send.
func parseDate(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00-03:00
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount converts a decimal amount string to positive cents.
// Writes the validation error and returns ok=false on bad input.
func parseAmount(c *gin.Context, s string) (int64, bool) {
	cents, err := util.ParseDecimalToCents(s)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
		return 0, false
	}
	if err := util.ValidateAmountCents(cents); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
		return 0, false
	}
	return cents, true
}
