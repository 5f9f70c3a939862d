package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/lshigami/Cryptoquest/internal/repository"
	"github.com/lshigami/Cryptoquest/internal/security"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

// AuthMiddleware resolves bearer tokens to users. The resolved user travels
// in the gin request context, never in package-level state.
type AuthMiddleware struct {
	tokens   *security.TokenManager
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens *security.TokenManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

// RequireUser aborts with 401 unless the request carries a valid bearer token
// for an existing user.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
			return
		}

		userID, err := m.tokens.ParseAccessToken(token)
		if err != nil {
			log.Warn().Err(err).Msg("Could not validate credentials")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Could not validate credentials"})
			return
		}

		user, err := m.userRepo.FindByID(userID)
		if err != nil {
			log.Warn().Uint("user_id", userID).Msg("Token subject not found")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "User not found"})
			return
		}

		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

// RequireSuperuser aborts with 403 when the resolved user lacks the superuser
// flag. Must run after RequireUser.
func (m *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok || !user.IsSuperuser {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "The user doesn't have enough privileges"})
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser for this request.
func CurrentUser(ctx *gin.Context) (*model.User, bool) {
	value, exists := ctx.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
