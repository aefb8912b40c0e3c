package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/model"
	"github.com/Pranathi1405/ClauseEase-AI/pkg/logger"
	"github.com/Pranathi1405/ClauseEase-AI/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "clauseease_session"

// LoginPath is where gated screens redirect when no session is present.
const LoginPath = "/auth?mode=login"

// SessionClaims binds a session ID into the signed cookie. The backend API
// token lives server-side in the session store, never in the cookie, and is
// not verified by this tier.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a cookie token for the given session ID.
func GenerateSessionToken(sessionID string, cfg *config.SessionConfig) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.ExpireHours) * time.Hour)

	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseSessionToken validates a cookie token and returns the session ID.
func ParseSessionToken(tokenString string, cfg *config.SessionConfig) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.SessionID, nil
}

// SetSessionCookie attaches the signed session cookie to the response.
func SetSessionCookie(c *gin.Context, token string, cfg *config.SessionConfig) {
	maxAge := cfg.ExpireHours * 3600
	c.SetCookie(SessionCookie, token, maxAge, "/", "", cfg.SecureCookie, true)
}

// ClearSessionCookie removes the session cookie (logout).
func ClearSessionCookie(c *gin.Context, cfg *config.SessionConfig) {
	c.SetCookie(SessionCookie, "", -1, "/", "", cfg.SecureCookie, true)
}

// SessionGate guards the upload and results screens: a request without a
// valid cookie backed by a stored session with a non-empty token/username
// pair is redirected to the login screen before any rendering happens. This
// is a precondition check, not a security boundary.
func SessionGate(cfg *config.SessionConfig, store *service.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			redirectToLogin(c)
			return
		}

		sessionID, err := ParseSessionToken(cookie, cfg)
		if err != nil {
			redirectToLogin(c)
			return
		}

		session := store.Get(sessionID)
		if session == nil || session.Token == "" || session.Username == "" {
			redirectToLogin(c)
			return
		}

		c.Set("session", session)
		c.Set("username", session.Username)

		ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, logger.UsernameKey, session.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}

// GetSession gets the gated session from gin context
func GetSession(c *gin.Context) *model.Session {
	if session, exists := c.Get("session"); exists {
		return session.(*model.Session)
	}
	return nil
}

// GetUsername gets the username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		return username.(string)
	}
	return ""
}
