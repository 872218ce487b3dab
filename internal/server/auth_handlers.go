package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surfaceplanner/surfaced/internal/session"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token       string        `json:"token"`
	User        *session.User `json:"user"`
	CallbackURL string        `json:"callbackUrl,omitempty"`
}

// upstreamLoginResponse is the shape of the identity provider's answer
type upstreamLoginResponse struct {
	User session.User `json:"user"`
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}

// sanitizeCallback keeps post-login redirects on this site. Anything that
// is not a plain absolute path is dropped.
func sanitizeCallback(callback string) string {
	if callback == "" {
		return ""
	}
	if !strings.HasPrefix(callback, "/") || strings.HasPrefix(callback, "//") {
		return ""
	}
	return callback
}

// @Summary Login
// @Description Authenticate against the backend identity provider and mint a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Forward credentials to the backend identity provider
	resp, err := s.relay.Forward(c.Request.Context(), http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Login request to backend failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !resp.OK() {
		if resp.StatusCode == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(resp.StatusCode, gin.H{"error": "Login failed", "details": string(resp.Body)})
		return
	}

	var upstream upstreamLoginResponse
	if err := json.Unmarshal(resp.Body, &upstream); err != nil || upstream.User.ID == "" {
		s.logger.Error().Err(err).Msg("Backend login response missing user profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Mint the gateway session cookie from the upstream profile
	token, err := s.sessions.Mint(upstream.User)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to mint session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setSessionCookie(c, token, s.sessions.TTL())

	s.logger.Info().
		Str("user_id", upstream.User.ID).
		Str("email", upstream.User.Email).
		Msg("User logged in")

	c.JSON(http.StatusOK, LoginResponse{
		Token:       token,
		User:        &upstream.User,
		CallbackURL: sanitizeCallback(c.Query("callbackUrl")),
	})
}

// @Summary Logout
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
