package middleware

import (
	"errors"
	"net/http"

	"axelmotors/controllers"
	"axelmotors/database"
	"axelmotors/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole lets the request through only when the authenticated caller's
// stored role equals role. It must run after Authenticate.
func RequireRole(store database.Store, role string) gin.HandlerFunc {
	return func(context *gin.Context) {
		email := context.GetString(controllers.EmailKey)
		if email == "" {
			context.AbortWithStatusJSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: "Authorization failed"})
			return
		}

		user, err := store.FindUserByEmail(context.Request.Context(), email)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				context.AbortWithStatusJSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden access"})
				return
			}
			logging.FromContext(context.Request.Context()).Error("role_lookup_failed",
				zap.String("email", email), zap.Error(err))
			context.AbortWithStatusJSON(http.StatusInternalServerError, controllers.ErrorResponse{Error: "Could not check permissions"})
			return
		}
		if user.Role != role {
			context.AbortWithStatusJSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden access"})
			return
		}
		context.Next()
	}
}
