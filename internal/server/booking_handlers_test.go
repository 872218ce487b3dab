package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListBookings_ForwardsQueryString(t *testing.T) {
	var gotURL string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"reference":"SP-1042"}]`))
	}))
	defer upstream.Close()

	s, _ := newTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=scheduled&page=2", nil)
	req.AddCookie(sessionCookie(t, s, "client"))
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if gotURL != "/api/bookings?status=scheduled&page=2" {
		t.Errorf("upstream URL = %q, want query string forwarded", gotURL)
	}
	if w.Body.String() != `[{"reference":"SP-1042"}]` {
		t.Errorf("body = %s, want upstream body verbatim", w.Body.String())
	}
}

func TestCreateBooking_ForwardsRawBody(t *testing.T) {
	var gotBody []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reference":"SP-1043"}`))
	}))
	defer upstream.Close()

	s, _ := newTestServer(t, upstream.URL)

	payload := `{"propertyAddress":"45 Gumtree Lane","package":"Full Media Suite"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, s, "client"))
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if string(gotBody) != payload {
		t.Errorf("upstream body = %s, want request body forwarded unchanged", gotBody)
	}
}

func TestCreateBooking_RejectsInvalidJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be contacted for unparseable payloads")
	}))
	defer upstream.Close()

	s, _ := newTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("not json"))
	req.AddCookie(sessionCookie(t, s, "client"))
	w := doRequest(s, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
