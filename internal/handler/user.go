package handler

import (
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the current logged-in user (behind AuthMiddleware).
func GetMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"currency":     user.Currency,
			"created_at":   user.CreatedAt,
		},
	})
}
