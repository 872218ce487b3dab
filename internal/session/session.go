// Package session resolves the visitor's authentication state from the
// signed session cookie minted after login against the upstream identity
// provider.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on successful login
const CookieName = "sp_session"

// Status is the resolution state of a session
type Status int

const (
	// StatusLoading means the session has not resolved yet
	StatusLoading Status = iota
	// StatusUnauthenticated means no valid session exists
	StatusUnauthenticated
	// StatusAuthenticated means a valid session exists
	StatusAuthenticated
)

// User holds the profile attributes carried by a session
type User struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is a snapshot of the visitor's authentication state.
// User may be nil while the profile has not populated.
type Session struct {
	Status Status
	User   *User
}

// Claims are the JWT claims stored in the session cookie
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager mints and verifies session tokens
type Manager struct {
	secret        []byte
	ttl           time.Duration
	refreshWindow time.Duration
}

// NewManager creates a session manager.
// Tokens expiring within refreshWindow are re-minted on page navigation.
func NewManager(secret string, ttl, refreshWindow time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is empty")
	}
	return &Manager{
		secret:        []byte(secret),
		ttl:           ttl,
		refreshWindow: refreshWindow,
	}, nil
}

// Mint creates a signed session token for a user
func (m *Manager) Mint(user User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates a session token and returns the user and expiry
func (m *Manager) Verify(tokenString string) (*User, time.Time, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, time.Time{}, fmt.Errorf("invalid token")
	}

	user := &User{
		ID:    claims.UserID,
		Role:  claims.Role,
		Name:  claims.Name,
		Email: claims.Email,
	}

	var expiry time.Time
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	return user, expiry, nil
}

// ShouldRefresh reports whether a token expiring at the given time is
// within the sliding refresh window
func (m *Manager) ShouldRefresh(expiry time.Time) bool {
	if expiry.IsZero() {
		return false
	}
	return time.Until(expiry) < m.refreshWindow
}

// Resolve reads the session cookie from a request and returns the
// resolved session. Resolution is synchronous server-side, so the
// result is never StatusLoading.
func (m *Manager) Resolve(r *http.Request) Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{Status: StatusUnauthenticated}
	}

	user, _, err := m.Verify(cookie.Value)
	if err != nil {
		return Session{Status: StatusUnauthenticated}
	}

	return Session{Status: StatusAuthenticated, User: user}
}

// TTL returns the configured session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
