package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDashboard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	s, _ := newTestServer(t, "http://192.0.2.1:9")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	location := w.Header().Get("Location")
	if location != "/auth/login?callbackUrl=%2Fdashboard" {
		t.Errorf("location = %q", location)
	}
}

func TestDashboard_WrongRoleRedirectsWithoutCallback(t *testing.T) {
	s, _ := newTestServer(t, "http://192.0.2.1:9")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, s, "photographer"))
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/auth/login" {
		t.Errorf("location = %q, want plain login path", location)
	}
}

func TestDashboard_ClientRendersPage(t *testing.T) {
	s, _ := newTestServer(t, "http://192.0.2.1:9")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, s, "Client")) // case-insensitive role
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Your bookings") {
		t.Error("dashboard page did not render")
	}
	if !strings.Contains(w.Body.String(), "Dana Chen") {
		t.Error("dashboard page missing session user name")
	}
}

func TestPublicPages_NoSessionRequired(t *testing.T) {
	s, _ := newTestServer(t, "http://192.0.2.1:9")

	for _, path := range []string{"/", "/faqs", "/terms", "/auth/login"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := doRequest(s, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, w.Code)
		}
	}
}

func TestSessionAuth_GarbageCookieIsUnauthorized(t *testing.T) {
	s, _ := newTestServer(t, "http://192.0.2.1:9")

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.AddCookie(&http.Cookie{Name: "sp_session", Value: "garbage"})
	w := doRequest(s, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
