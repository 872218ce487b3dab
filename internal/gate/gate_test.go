package gate

import (
	"testing"
	"time"

	"github.com/surfaceplanner/surfaced/internal/session"
)

func testConfig() Config {
	return Config{
		LoginPath:   "/auth/login",
		PublicPaths: []string{"/", "/faqs", "/terms", "/auth/login"},
		ClientRole:  "client",
	}
}

func clientUser() *session.User {
	return &session.User{ID: "01J", Role: "client", Name: "Dana", Email: "dana@example.com"}
}

func TestChecker_PublicPathAllows(t *testing.T) {
	tests := []struct {
		name   string
		status session.Status
		user   *session.User
	}{
		{name: "unauthenticated visitor", status: session.StatusUnauthenticated},
		{name: "authenticated visitor", status: session.StatusAuthenticated, user: clientUser()},
		{name: "authenticated wrong role", status: session.StatusAuthenticated, user: &session.User{ID: "x", Role: "staff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(testConfig(), "/faqs")

			res := c.Observe(session.Session{Status: session.StatusLoading})
			if res.Decision != DecisionPending {
				t.Fatalf("expected pending while loading, got %v", res.Decision)
			}

			res = c.Observe(session.Session{Status: tt.status, User: tt.user})
			if res.Decision != DecisionAllow {
				t.Errorf("expected allow on public path, got %v", res.Decision)
			}
		})
	}
}

func TestChecker_UnauthenticatedRedirectsWithCallback(t *testing.T) {
	c := NewChecker(testConfig(), "/dashboard")

	res := c.Observe(session.Session{Status: session.StatusUnauthenticated})
	if res.Decision != DecisionRedirect {
		t.Fatalf("expected redirect, got %v", res.Decision)
	}

	want := "/auth/login?callbackUrl=%2Fdashboard"
	if res.Location != want {
		t.Errorf("location = %q, want %q", res.Location, want)
	}
}

func TestChecker_RoleMismatchRedirectsWithoutCallback(t *testing.T) {
	c := NewChecker(testConfig(), "/dashboard")

	res := c.Observe(session.Session{
		Status: session.StatusAuthenticated,
		User:   &session.User{ID: "01J", Role: "photographer"},
	})
	if res.Decision != DecisionRedirect {
		t.Fatalf("expected redirect, got %v", res.Decision)
	}
	if res.Location != "/auth/login" {
		t.Errorf("location = %q, want plain login path with no callback", res.Location)
	}
}

func TestChecker_RoleComparisonIsCaseInsensitive(t *testing.T) {
	for _, role := range []string{"client", "Client", "CLIENT"} {
		c := NewChecker(testConfig(), "/dashboard")

		res := c.Observe(session.Session{
			Status: session.StatusAuthenticated,
			User:   &session.User{ID: "01J", Role: role},
		})
		if res.Decision != DecisionAllow {
			t.Errorf("role %q: expected allow, got %v", role, res.Decision)
		}
	}
}

func TestChecker_LatchesOnFirstResolvedSnapshot(t *testing.T) {
	c := NewChecker(testConfig(), "/dashboard")

	// loading -> unauthenticated -> authenticated: only the first
	// resolved transition may decide
	c.Observe(session.Session{Status: session.StatusLoading})
	first := c.Observe(session.Session{Status: session.StatusUnauthenticated})
	second := c.Observe(session.Session{Status: session.StatusAuthenticated, User: clientUser()})

	if first.Decision != DecisionRedirect {
		t.Fatalf("first resolved snapshot: expected redirect, got %v", first.Decision)
	}
	if second.Decision != DecisionRedirect || second.Location != first.Location {
		t.Errorf("later snapshot changed the latched decision: %+v", second)
	}
}

func TestChecker_WaitsForProfileThenAllows(t *testing.T) {
	c := NewChecker(testConfig(), "/dashboard")

	// Authenticated but profile not populated yet: soft wait
	res := c.Observe(session.Session{Status: session.StatusAuthenticated})
	if res.Decision != DecisionPending {
		t.Fatalf("expected pending while profile missing, got %v", res.Decision)
	}

	res = c.Observe(session.Session{Status: session.StatusAuthenticated, User: clientUser()})
	if res.Decision != DecisionAllow {
		t.Errorf("expected allow once profile arrives, got %v", res.Decision)
	}
}

func TestChecker_ResolveTimeoutFailsExplicitly(t *testing.T) {
	cfg := testConfig()
	cfg.ResolveTimeout = time.Millisecond

	c := NewChecker(cfg, "/dashboard")

	c.Observe(session.Session{Status: session.StatusAuthenticated})
	time.Sleep(5 * time.Millisecond)

	res := c.Observe(session.Session{Status: session.StatusAuthenticated})
	if res.Decision != DecisionFailed {
		t.Fatalf("expected failed after resolve timeout, got %v", res.Decision)
	}

	// Failed is terminal: even a complete profile cannot revive the check
	res = c.Observe(session.Session{Status: session.StatusAuthenticated, User: clientUser()})
	if res.Decision != DecisionFailed {
		t.Errorf("expected failure to latch, got %v", res.Decision)
	}
}

func TestEvaluate_SingleShot(t *testing.T) {
	cfg := testConfig()

	res := Evaluate(cfg, "/dashboard", session.Session{Status: session.StatusAuthenticated, User: clientUser()})
	if res.Decision != DecisionAllow {
		t.Errorf("resolved session with client role: expected allow, got %v", res.Decision)
	}

	res = Evaluate(cfg, "/dashboard", session.Session{Status: session.StatusAuthenticated})
	if res.Decision != DecisionFailed {
		t.Errorf("resolved session without profile: expected failed, got %v", res.Decision)
	}
}
