package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/surfaceplanner/surfaced/internal/gate"
	"github.com/surfaceplanner/surfaced/internal/session"
)

const (
	bearerPrefix = "Bearer "
)

var (
	ErrNoSession    = errors.New("no valid session")
	ErrInvalidToken = errors.New("invalid token")
	ErrRoleMismatch = errors.New("role mismatch")
)

func setSessionUser(c *gin.Context, user *session.User) {
	c.Set("session_user", user)
}

// GetSessionUser returns the authenticated user attached by the session
// middleware
func GetSessionUser(c *gin.Context) (*session.User, bool) {
	v, exists := c.Get("session_user")
	if !exists {
		return nil, false
	}

	user, ok := v.(*session.User)
	return user, ok
}

// extractToken pulls the session token from the cookie or, for CLI
// callers, from a bearer Authorization header
func extractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie, nil
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, bearerPrefix) {
		token := strings.TrimPrefix(authHeader, bearerPrefix)
		if token != "" {
			return token, nil
		}
	}

	return "", ErrNoSession
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// SessionAuthMiddleware validates the session server-side before any
// proxied or local API work happens. Without a session the upstream is
// never contacted.
func SessionAuthMiddleware(sessions *session.Manager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			respondWithError(c, log, http.StatusUnauthorized, err, "Unauthorized")
			return
		}

		user, _, err := sessions.Verify(token)
		if err != nil {
			respondWithError(c, log, http.StatusUnauthorized, ErrInvalidToken, "Unauthorized")
			return
		}

		setSessionUser(c, user)

		c.Next()
	}
}

// RequireRole ensures the authenticated user carries the expected role.
// The comparison is case-insensitive.
func RequireRole(role string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetSessionUser(c)
		if !exists {
			respondWithError(c, log, http.StatusUnauthorized, ErrNoSession, "Unauthorized")
			return
		}

		if !strings.EqualFold(user.Role, role) {
			respondWithError(c, log, http.StatusForbidden, ErrRoleMismatch, "Access denied")
			return
		}

		c.Next()
	}
}

// PageGateMiddleware guards dashboard pages: unauthenticated visitors are
// redirected to the login form with the originating path as callback, and
// authenticated visitors with the wrong role are sent back to login.
// Sessions nearing expiry are re-minted on the way through.
func PageGateMiddleware(cfg gate.Config, sessions *session.Manager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Session{Status: session.StatusUnauthenticated}

		if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
			if user, expiry, err := sessions.Verify(cookie); err == nil {
				sess = session.Session{Status: session.StatusAuthenticated, User: user}

				// Sliding refresh on page navigation
				if sessions.ShouldRefresh(expiry) {
					if token, err := sessions.Mint(*user); err == nil {
						setSessionCookie(c, token, sessions.TTL())
					}
				}
			}
		}

		res := gate.Evaluate(cfg, c.Request.URL.Path, sess)
		switch res.Decision {
		case gate.DecisionAllow:
			if sess.User != nil {
				setSessionUser(c, sess.User)
			}
			c.Next()
		case gate.DecisionRedirect:
			log.Debug().
				Str("path", c.Request.URL.Path).
				Str("location", res.Location).
				Msg("Auth gate redirect")
			c.Redirect(http.StatusSeeOther, res.Location)
			c.Abort()
		default:
			// The session never produced a usable profile
			log.Warn().Str("path", c.Request.URL.Path).Msg("Auth gate check failed")
			c.Redirect(http.StatusSeeOther, cfg.LoginPath)
			c.Abort()
		}
	}
}
