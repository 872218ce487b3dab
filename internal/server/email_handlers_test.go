package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/surfaceplanner/surfaced/internal/models"
)

func postJSON(s *Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return doRequest(s, req)
}

func TestSendContactEmail_Success(t *testing.T) {
	s, sender := newTestServer(t, "http://192.0.2.1:9")

	w := postJSON(s, "/api/email", `{
		"name": "Dana Chen",
		"email": "dana@example.com",
		"phone": "+61 400 123 456",
		"message": "Can you shoot a 3-bedroom unit this Friday?"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["message"] == "" {
		t.Error("expected a message field on success")
	}

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sent))
	}
	if sent[0].ReplyTo != "dana@example.com" {
		t.Errorf("reply-to = %q", sent[0].ReplyTo)
	}
	if !strings.Contains(sent[0].HTML, "Dana Chen") {
		t.Error("rendered email missing sender name")
	}

	// Delivery is recorded in the submission log
	var subs []models.Submission
	if err := s.db.Find(&subs).Error; err != nil {
		t.Fatalf("failed to load submissions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("recorded %d submissions, want 1", len(subs))
	}
	if subs[0].Kind != models.SubmissionKindContact || subs[0].Status != models.SubmissionStatusSent {
		t.Errorf("submission = %+v", subs[0])
	}
}

func TestSendContactEmail_RelayOutageSurfacesAs500(t *testing.T) {
	s, sender := newTestServer(t, "http://192.0.2.1:9")
	sender.err = errors.New("smtp: connection refused")

	w := postJSON(s, "/api/email", `{
		"name": "Dana Chen",
		"email": "dana@example.com",
		"message": "hello"
	}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error field")
	}

	// The failed attempt is still recorded
	var subs []models.Submission
	if err := s.db.Find(&subs).Error; err != nil {
		t.Fatalf("failed to load submissions: %v", err)
	}
	if len(subs) != 1 || subs[0].Status != models.SubmissionStatusFailed {
		t.Errorf("submissions = %+v, want one failed record", subs)
	}
	if subs[0].Error == "" {
		t.Error("failed submission should carry the delivery error")
	}
}

func TestSendContactEmail_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"a@b.com","message":"hi"}`},
		{name: "bad email", body: `{"name":"A","email":"not-an-email","message":"hi"}`},
		{name: "missing message", body: `{"name":"A","email":"a@b.com"}`},
		{name: "bad phone", body: `{"name":"A","email":"a@b.com","phone":"call me","message":"hi"}`},
		{name: "not json", body: `name=A`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sender := newTestServer(t, "http://192.0.2.1:9")

			w := postJSON(s, "/api/email", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(sender.Sent()) != 0 {
				t.Error("invalid payload must not send email")
			}
		})
	}
}

func TestSendBookingEmail_Success(t *testing.T) {
	s, sender := newTestServer(t, "http://192.0.2.1:9")

	w := postJSON(s, "/api/cresmail", `{
		"name": "Marcus Reid",
		"email": "marcus@cres.example.com",
		"company": "CRES Realty",
		"propertyAddress": "12 Harbourview Terrace",
		"package": "Drone + Twilight",
		"preferredDate": "2026-09-12",
		"notes": "Back gate code is 4411"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sent))
	}
	if !strings.Contains(sent[0].Subject, "12 Harbourview Terrace") {
		t.Errorf("subject = %q, want property address", sent[0].Subject)
	}
	for _, want := range []string{"Marcus Reid", "CRES Realty", "Drone + Twilight", "4411"} {
		if !strings.Contains(sent[0].HTML, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}

	var subs []models.Submission
	if err := s.db.Find(&subs).Error; err != nil {
		t.Fatalf("failed to load submissions: %v", err)
	}
	if len(subs) != 1 || subs[0].Kind != models.SubmissionKindBooking {
		t.Errorf("submissions = %+v", subs)
	}
}

func TestListSubmissions_RequiresAdmin(t *testing.T) {
	s, _ := newTestServer(t, "http://192.0.2.1:9")

	// No session
	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	if w := doRequest(s, req); w.Code != http.StatusUnauthorized {
		t.Errorf("no session: status = %d, want 401", w.Code)
	}

	// Client role is not enough
	req = httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.AddCookie(sessionCookie(t, s, "client"))
	if w := doRequest(s, req); w.Code != http.StatusForbidden {
		t.Errorf("client role: status = %d, want 403", w.Code)
	}

	// Admin via bearer token (CLI path)
	token, err := s.sessions.Mint(sessionUserForRole("admin"))
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin bearer: status = %d, body = %s", w.Code, w.Body.String())
	}

	var subs []models.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &subs); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
}
