// Package gate implements the dashboard auth gate: a one-shot check that
// decides, from the current path and session, whether a visitor may see a
// protected page or must be sent to the login form.
package gate

import (
	"net/url"
	"strings"
	"time"

	"github.com/surfaceplanner/surfaced/internal/session"
)

// CallbackParam is the query parameter carrying the originating path to
// return to after login
const CallbackParam = "callbackUrl"

// Decision is the outcome of a gate check
type Decision int

const (
	// DecisionPending means no decision has been made yet
	DecisionPending Decision = iota
	// DecisionAllow means the visitor may see the page
	DecisionAllow
	// DecisionRedirect means the visitor must be sent to Location
	DecisionRedirect
	// DecisionFailed means the session never produced a usable profile
	// before the resolve deadline
	DecisionFailed
)

// Result is the latched outcome of a gate check
type Result struct {
	Decision Decision
	Location string // Set when Decision is DecisionRedirect
}

// Config holds the gate's fixed inputs
type Config struct {
	LoginPath      string        // Where unauthenticated visitors are sent
	PublicPaths    []string      // Paths that never require a session
	ClientRole     string        // Expected role, compared case-insensitively
	ResolveTimeout time.Duration // Max wait for a usable profile; 0 = no limit
}

type state int

const (
	stateUnchecked state = iota
	stateChecked
	stateRedirected
	stateFailed
)

// Checker runs the auth check for a single path. The check latches on the
// first resolved session snapshot: once a decision is made, later
// snapshots are ignored, so repeated session updates cannot cause
// redirect loops.
type Checker struct {
	cfg      Config
	path     string
	state    state
	result   Result
	deadline time.Time
}

// NewChecker creates a checker for the given path
func NewChecker(cfg Config, path string) *Checker {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/auth/login"
	}
	c := &Checker{cfg: cfg, path: path}
	if cfg.ResolveTimeout > 0 {
		c.deadline = time.Now().Add(cfg.ResolveTimeout)
	}
	return c
}

// Observe feeds a session snapshot to the checker and returns the current
// result. Snapshots arriving after the check has latched are ignored.
func (c *Checker) Observe(s session.Session) Result {
	if c.state != stateUnchecked {
		return c.result
	}

	// Suspend the decision while the session is still resolving
	if s.Status == session.StatusLoading {
		c.checkDeadline()
		return c.result
	}

	if c.isPublic() {
		c.allow()
		return c.result
	}

	if s.Status == session.StatusUnauthenticated {
		c.redirect(c.cfg.LoginPath + "?" + CallbackParam + "=" + url.QueryEscape(c.path))
		return c.result
	}

	// Authenticated but the profile has not populated yet. Soft wait: the
	// next snapshot may carry it. Bounded by the resolve deadline so a
	// profile that never arrives fails explicitly instead of hanging.
	if s.User == nil {
		c.checkDeadline()
		return c.result
	}

	if !strings.EqualFold(s.User.Role, c.cfg.ClientRole) {
		// Wrong role: back to login, no callback
		c.redirect(c.cfg.LoginPath)
		return c.result
	}

	c.allow()
	return c.result
}

// Result returns the latched result
func (c *Checker) Result() Result {
	return c.result
}

func (c *Checker) isPublic() bool {
	for _, p := range c.cfg.PublicPaths {
		if p == c.path {
			return true
		}
	}
	return false
}

func (c *Checker) allow() {
	c.state = stateChecked
	c.result = Result{Decision: DecisionAllow}
}

func (c *Checker) redirect(location string) {
	c.state = stateRedirected
	c.result = Result{Decision: DecisionRedirect, Location: location}
}

func (c *Checker) checkDeadline() {
	if !c.deadline.IsZero() && time.Now().After(c.deadline) {
		c.state = stateFailed
		c.result = Result{Decision: DecisionFailed}
	}
}

// Evaluate runs a single-shot check for a fully resolved session. This is
// the per-request form used by the server middleware, where session
// resolution is synchronous.
func Evaluate(cfg Config, path string, s session.Session) Result {
	c := NewChecker(cfg, path)
	res := c.Observe(s)
	if res.Decision == DecisionPending {
		// A resolved session with no profile cannot make progress in a
		// single-shot evaluation
		return Result{Decision: DecisionFailed}
	}
	return res
}
