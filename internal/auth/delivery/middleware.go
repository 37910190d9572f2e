package delivery

import (
	"strings"

	authdomain "rentit-backend/internal/auth/domain"
	"rentit-backend/internal/auth/usecase"
	"rentit-backend/pkg/apperror"
	"rentit-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware accepts the access token from the accessToken cookie or an
// Authorization: Bearer header and stores the sanitized user on the context.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookieValue(c, AccessTokenCookie)
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}
		if token == "" {
			response.Error(c, apperror.Unauthorized("Unauthorized request"))
			return
		}

		user, err := authUsecase.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*authdomain.PublicUser, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.PublicUser)
	return user, ok && user != nil
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
