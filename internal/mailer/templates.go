package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ContactForm holds the fields of the general contact form
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// BookingForm holds the fields of the CRES booking enquiry form
type BookingForm struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	PropertyAddr  string
	Package       string
	PreferredDate string
	Notes         string
}

// RenderContact builds the contact-form notification message
func RenderContact(form ContactForm) (Message, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, "contact.html", form); err != nil {
		return Message{}, fmt.Errorf("failed to render contact email: %w", err)
	}

	return Message{
		ReplyTo: form.Email,
		Subject: sanitizeHeader(fmt.Sprintf("New contact enquiry from %s", form.Name)),
		HTML:    buf.String(),
	}, nil
}

// RenderBooking builds the booking-enquiry notification message
func RenderBooking(form BookingForm) (Message, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, "booking.html", form); err != nil {
		return Message{}, fmt.Errorf("failed to render booking email: %w", err)
	}

	return Message{
		ReplyTo: form.Email,
		Subject: sanitizeHeader(fmt.Sprintf("New booking enquiry: %s", form.PropertyAddr)),
		HTML:    buf.String(),
	}, nil
}
