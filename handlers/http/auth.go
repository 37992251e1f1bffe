package httpHandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roomhub/confs"
	"roomhub/usecases"
)

type AuthHandler struct {
	auth *usecases.AuthUseCase
}

func NewAuthHandler(auth *usecases.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginForm handles GET /login. Already-authenticated callers go home.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if _, ok := UserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// Login handles POST /login. A failed attempt re-shows the form with a
// message; it never redirects.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, session, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "page": "login"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, gin.H{
		"message": "logged in",
		"user":    user,
	})
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	if _, ok := UserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

// Register handles POST /register: creates the account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, session, err := h.auth.Register(req.Username, req.Password)
	if err != nil {
		// ErrUsernameTaken and validation failures both re-render the form
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "form": gin.H{"username": req.Username}})
		return
	}

	setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user":    user,
	})
}

// Logout handles GET/POST /logout. Destroying a missing session is a no-op;
// either way the caller lands back home.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(confs.SessionCookieName())
	if err == nil && token != "" {
		_ = h.auth.Logout(token)
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(confs.SessionCookieName(), token, int(confs.SessionTTL().Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(confs.SessionCookieName(), "", -1, "/", "", false, true)
}
