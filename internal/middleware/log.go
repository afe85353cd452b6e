package middleware

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxAuditBody = 2000

// AuditMiddleware records authenticated mutations (method, path, truncated
// request body, client info) into the audit_logs table. GET traffic and
// anonymous requests are skipped.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// buffer the body so the handler can still read it
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		user, ok := CurrentUser(c)
		if !ok {
			return
		}
		if c.Request.Method == "GET" {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < maxAuditBody {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    &user.ID,
			Path:      path,
			Method:    c.Request.Method,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		if err := db.Create(&entry).Error; err != nil {
			slog.Error("write audit log", "error", err, "path", path, "user_id", user.ID)
		}
	}
}
