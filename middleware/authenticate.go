package middleware

import (
	"net/http"
	"strings"

	"axelmotors/controllers"
	"axelmotors/logging"
	"axelmotors/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticate requires a valid "Bearer <token>" Authorization header and
// stores the token's email on the context. A missing header is 401; anything
// else that fails validation is 403.
func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(context *gin.Context) {
		header := context.GetHeader("Authorization")
		if header == "" {
			context.AbortWithStatusJSON(http.StatusUnauthorized,
				controllers.ErrorResponse{Error: "No authorization header provided"})
			return
		}

		scheme, clientToken, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(clientToken) == "" {
			context.AbortWithStatusJSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden access"})
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(clientToken))
		if err != nil {
			logging.FromContext(context.Request.Context()).Debug("token_rejected", zap.Error(err))
			context.AbortWithStatusJSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden access"})
			return
		}

		context.Set(controllers.EmailKey, claims.Email)
		context.Next()
	}
}
