package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/auth"
	"github.com/farhanahmed/family-hub-api/internal/constants"
	apierrors "github.com/farhanahmed/family-hub-api/internal/errors"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
)

// RequireAuth resolves the bearer token to a user account and stores it
// in the request context. Every failure mode (missing header, bad
// signature, expired token, unknown subject) produces the same 401 so
// a caller cannot tell which check failed.
func RequireAuth(tokens *auth.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, tokens, userRepo)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// RequireAdmin gates an operation on the admin role. It must run after
// RequireAuth. A valid non-admin identity gets 403, distinct from the
// 401 of a failed credential.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireInternalAdmin admits service-to-service callers presenting the
// configured internal token, resolving them as the first admin account.
// An empty configured token disables the bypass entirely; such callers
// fall through to regular JWT validation plus the admin gate.
func RequireInternalAdmin(internalToken string, tokens *auth.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if internalToken != "" && subtle.ConstantTimeCompare([]byte(bearer), []byte(internalToken)) == 1 {
			admin, err := userRepo.FirstAdmin()
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					apierrors.ServiceUnavailable(c, "No admin account available")
				} else {
					apierrors.InternalError(c, "")
				}
				c.Abort()
				return
			}

			c.Set(constants.ContextKeyUser, admin)
			c.Set(constants.ContextKeyUserID, admin.ID)
			c.Next()
			return
		}

		user, ok := resolveUser(c, tokens, userRepo)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetCurrentUser retrieves the resolved user from the request context.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := value.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}

// resolveUser verifies the bearer token and looks up the subject
// account. A user deleted after token issuance resolves the same as one
// that never existed.
func resolveUser(c *gin.Context, tokens *auth.TokenService, userRepo repository.UserRepository) (*models.User, bool) {
	bearer, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if err != nil {
		return nil, false
	}

	subject, err := tokens.Verify(bearer)
	if err != nil {
		return nil, false
	}

	user, err := userRepo.FindByUsername(subject)
	if err != nil {
		return nil, false
	}

	return user, true
}
