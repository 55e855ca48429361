package middleware

import (
	"net/http"
	"strings"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminPINHeader carries the calendar admin PIN.
const AdminPINHeader = "x-admin-pin"

// ContextKeyAdmin is set to true once the gate lets a request through.
const ContextKeyAdmin = "admin"

// AdminGate lets a request through when it carries the admin PIN or a valid admin
// session token. Anything else ends the request with a forbidden envelope (HTTP 200)
// before any store call is made.
func AdminGate(pin auth.PIN, sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pin.Match(c.GetHeader(AdminPINHeader)) {
			c.Set(ContextKeyAdmin, true)
			c.Next()
			return
		}

		if token := bearerToken(c.GetHeader("Authorization")); token != "" && sessions != nil && pin.Configured() {
			if _, err := sessions.Validate(token); err == nil {
				c.Set(ContextKeyAdmin, true)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusOK, models.Fail(models.ErrCodeForbidden, ""))
	}
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
