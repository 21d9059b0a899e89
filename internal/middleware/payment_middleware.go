package middleware

import (
	"crypto/hmac"
	"net/http"
	"os"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/gin-gonic/gin"
)

// PaymentCallbackMiddleware authenticates the external payment
// collaborator's callbacks with a shared token. The platform never
// talks to the payment gateway itself; it only receives outcomes.
func PaymentCallbackMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("PAYMENT_CALLBACK_TOKEN")
		if expected == "" {
			helpers.RespondWithError(c, http.StatusServiceUnavailable, "Payment callbacks not configured.")
			c.Abort()
			return
		}
		token := c.GetHeader("X-Callback-Token")
		if !hmac.Equal([]byte(token), []byte(expected)) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid callback token.")
			c.Abort()
			return
		}
		c.Next()
	}
}
