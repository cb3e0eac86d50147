package middleware

import (
	"net/http"
	"strings"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CurrentUserKey = "currentUser"

// RequireAuth verifies the bearer token, loads the user it names and puts
// the user on the context. Each check either passes through or ends the
// request with a fixed 401.
func RequireAuth(gdb *gorm.DB, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abort(c, apperr.New("Please login or signup", http.StatusUnauthorized))
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			abort(c, apperr.New("Invalid token", http.StatusUnauthorized))
			return
		}

		var user models.User
		if err := gdb.First(&user, claims.UserID).Error; err != nil {
			abort(c, apperr.New("Not found user with this token", http.StatusUnauthorized))
			return
		}

		// A password change after the token was issued invalidates it.
		if claims.IssuedAt != nil && user.PasswordChangedAt.Unix() > claims.IssuedAt.Unix() {
			abort(c, apperr.New("Unauthorized, You changed your password, Please login again", http.StatusUnauthorized))
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// RequireRole passes through only when the authenticated user's role is an
// exact match. Fails closed when RequireAuth did not run.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			abort(c, apperr.New("You are not allow to perform this operation", http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
