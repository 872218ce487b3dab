package mailer

import (
	"strings"
	"testing"
)

func TestRenderContact(t *testing.T) {
	msg, err := RenderContact(ContactForm{
		Name:    "Dana Chen",
		Email:   "dana@example.com",
		Phone:   "+61 400 000 000",
		Message: "Looking for a twilight shoot next week.",
	})
	if err != nil {
		t.Fatalf("RenderContact() error = %v", err)
	}

	if msg.Subject != "New contact enquiry from Dana Chen" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if msg.ReplyTo != "dana@example.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}
	for _, want := range []string{"Dana Chen", "dana@example.com", "+61 400 000 000", "twilight shoot"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRenderContact_EscapesHTML(t *testing.T) {
	msg, err := RenderContact(ContactForm{
		Name:    "<script>alert(1)</script>",
		Email:   "x@example.com",
		Message: "hi",
	})
	if err != nil {
		t.Fatalf("RenderContact() error = %v", err)
	}

	if strings.Contains(msg.HTML, "<script>") {
		t.Error("HTML should escape markup in form fields")
	}
}

func TestRenderBooking(t *testing.T) {
	msg, err := RenderBooking(BookingForm{
		Name:          "Marcus Reid",
		Email:         "marcus@example.com",
		Phone:         "0400 111 222",
		Company:       "Reid Realty",
		PropertyAddr:  "12 Harbourview Terrace, Manly",
		Package:       "Photography + Floorplan",
		PreferredDate: "2026-09-14",
		Notes:         "Access via agent lockbox.",
	})
	if err != nil {
		t.Fatalf("RenderBooking() error = %v", err)
	}

	if msg.Subject != "New booking enquiry: 12 Harbourview Terrace, Manly" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	for _, want := range []string{"Marcus Reid", "Reid Realty", "12 Harbourview Terrace", "Photography + Floorplan", "agent lockbox"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRender_StripsHeaderInjection(t *testing.T) {
	msg, err := RenderContact(ContactForm{
		Name:    "Eve\r\nBcc: victim@example.com",
		Email:   "eve@example.com",
		Message: "hi",
	})
	if err != nil {
		t.Fatalf("RenderContact() error = %v", err)
	}

	if strings.ContainsAny(msg.Subject, "\r\n") {
		t.Errorf("Subject contains CR/LF: %q", msg.Subject)
	}
}
