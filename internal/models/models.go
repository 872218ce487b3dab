package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Submission kinds
const (
	SubmissionKindContact = "contact"
	SubmissionKindBooking = "booking"
)

// Submission delivery statuses
const (
	SubmissionStatusSent   = "sent"
	SubmissionStatusFailed = "failed"
)

// Submission records one form-to-email delivery attempt so operators can
// audit form traffic. The email body itself is not persisted.
type Submission struct {
	BaseModel
	Kind      string `json:"kind" gorm:"not null;index"`      // contact, booking
	Name      string `json:"name" gorm:"not null"`            // Sender name
	Email     string `json:"email" gorm:"not null"`           // Sender email
	Recipient string `json:"recipient" gorm:"not null"`       // Inbox the email went to
	Subject   string `json:"subject" gorm:"not null"`
	Status    string `json:"status" gorm:"not null;index"`    // sent, failed
	Error     string `json:"error,omitempty" gorm:"type:text"` // Delivery error, if any
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Submission{})
}
