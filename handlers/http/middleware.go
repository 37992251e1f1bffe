package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomhub/confs"
	"roomhub/entities"
	"roomhub/usecases"
)

const currentUserKey = "current_user"

// CurrentUser resolves the session cookie to a user and stores it on the
// context. Anonymous and expired-session requests pass through with no user
// set; it never aborts.
func CurrentUser(auth *usecases.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(confs.SessionCookieName())
		if err == nil && token != "" {
			if user, err := auth.CurrentUser(token); err == nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous callers to the login page before the
// handler body runs.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user set by CurrentUser, if any.
func UserFrom(c *gin.Context) (*entities.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}
