package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/middleware"
	"github.com/Pranathi1405/ClauseEase-AI/pkg/logger"
	"github.com/Pranathi1405/ClauseEase-AI/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler owns the login/register screen. Field checks run locally
// before any backend call; credentials are only persisted on a successful
// login.
type AuthHandler struct {
	backend *service.BackendClient
	store   *service.SessionStore
	session *config.SessionConfig
}

func NewAuthHandler(backend *service.BackendClient, sessionCfg *config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		backend: backend,
		store:   service.GetSessionStore(),
		session: sessionCfg,
	}
}

// AuthView is the template data for the auth screen.
type AuthView struct {
	LoginMode    bool
	Message      string
	MessageClass string
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ShowAuth renders the auth screen. Register is the default mode;
// mode=login selects login (the legacy #login fragment is mapped to it
// client-side).
func (h *AuthHandler) ShowAuth(c *gin.Context) {
	c.HTML(http.StatusOK, "auth.html", AuthView{LoginMode: c.Query("mode") == "login"})
}

// Login authenticates against the backend and opens a session on success.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		h.renderAuth(c, http.StatusBadRequest, true, "Please fill in all fields")
		return
	}

	result, err := h.backend.Login(c.Request.Context(), email, password)
	if err != nil {
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			h.renderAuth(c, http.StatusUnauthorized, true, authErr.Message)
			return
		}
		logger.Error(c.Request.Context(), "login request failed", "error", err)
		h.renderAuth(c, http.StatusBadGateway, true, "Connection error. Please try again.")
		return
	}

	session := h.store.Create(result.Token, result.Username)
	cookieToken, _, err := middleware.GenerateSessionToken(session.ID, h.session)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to sign session cookie", "error", err)
		h.store.Delete(session.ID)
		h.renderAuth(c, http.StatusInternalServerError, true, "Login failed")
		return
	}

	middleware.SetSessionCookie(c, cookieToken, h.session)
	logger.Info(c.Request.Context(), "user logged in", "username", result.Username)
	c.Redirect(http.StatusSeeOther, "/upload")
}

// Register creates an account via the backend, then switches the screen to
// login mode with a success message.
func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if msg := validateRegistration(username, email, password, confirm); msg != "" {
		h.renderAuth(c, http.StatusBadRequest, false, msg)
		return
	}

	if _, err := h.backend.Register(c.Request.Context(), username, email, password); err != nil {
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			h.renderAuth(c, http.StatusUnprocessableEntity, false, authErr.Message)
			return
		}
		logger.Error(c.Request.Context(), "register request failed", "error", err)
		h.renderAuth(c, http.StatusBadGateway, false, "Connection error. Please try again.")
		return
	}

	c.HTML(http.StatusOK, "auth.html", AuthView{
		LoginMode:    true,
		Message:      "Registration successful! You can now sign in.",
		MessageClass: "success",
	})
}

// Logout drops the session record and cookie, then returns to the login
// screen. The cached result dies with the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session := middleware.GetSession(c); session != nil {
		h.store.Delete(session.ID)
		logger.Info(c.Request.Context(), "user logged out", "username", session.Username)
	}
	middleware.ClearSessionCookie(c, h.session)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) renderAuth(c *gin.Context, status int, loginMode bool, message string) {
	c.HTML(status, "auth.html", AuthView{
		LoginMode:    loginMode,
		Message:      message,
		MessageClass: "error",
	})
}

// validateRegistration applies the local field checks; a non-empty return
// is the user-facing rejection message and means no backend call is made.
func validateRegistration(username, email, password, confirm string) string {
	if username == "" || email == "" || password == "" || confirm == "" {
		return "Please fill in all fields"
	}
	if len(username) < 3 {
		return "Username must be at least 3 characters"
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters"
	}
	if password != confirm {
		return "Passwords do not match"
	}
	if !emailRe.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}
