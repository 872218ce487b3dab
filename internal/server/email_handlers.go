package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/surfaceplanner/surfaced/internal/mailer"
	"github.com/surfaceplanner/surfaced/internal/models"
)

// ContactEmailRequest represents the contact form payload
type ContactEmailRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,phone"`
	Message string `json:"message" binding:"required"`
}

// BookingEmailRequest represents the CRES booking enquiry payload
type BookingEmailRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"omitempty,phone"`
	Company         string `json:"company"`
	PropertyAddress string `json:"propertyAddress" binding:"required"`
	Package         string `json:"package" binding:"required"`
	PreferredDate   string `json:"preferredDate"`
	Notes           string `json:"notes"`
}

// deliver sends the rendered message and records the attempt in the
// submission log. The send is a single synchronous attempt: a relay
// outage surfaces directly to the caller.
func (s *Server) deliver(c *gin.Context, kind string, msg mailer.Message, name, email string) {
	sendErr := s.mail.Send(c.Request.Context(), msg)

	recipient := msg.To
	if recipient == "" {
		recipient = s.config.SMTP.To
	}

	sub := &models.Submission{
		Kind:      kind,
		Name:      name,
		Email:     email,
		Recipient: recipient,
		Subject:   msg.Subject,
		Status:    models.SubmissionStatusSent,
	}
	if sendErr != nil {
		sub.Status = models.SubmissionStatusFailed
		sub.Error = sendErr.Error()
	}
	if err := s.submissions.Record(sub); err != nil {
		// The email outcome still decides the response
		s.logger.Error().Err(err).Msg("Failed to record submission")
	}

	if sendErr != nil {
		s.logger.Error().Err(sendErr).Str("kind", kind).Msg("Failed to send email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

// @Summary Send contact email
// @Description Send the contact form as an email to the bookings inbox
// @Tags email
// @Accept json
// @Produce json
// @Param request body ContactEmailRequest true "Contact form"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/email [post]
func (s *Server) sendContactEmail(c *gin.Context) {
	var req ContactEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := mailer.RenderContact(mailer.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render contact email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	s.deliver(c, models.SubmissionKindContact, msg, req.Name, req.Email)
}

// @Summary Send booking enquiry email
// @Description Send the CRES booking form as an email to the bookings inbox
// @Tags email
// @Accept json
// @Produce json
// @Param request body BookingEmailRequest true "Booking form"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/cresmail [post]
func (s *Server) sendBookingEmail(c *gin.Context) {
	var req BookingEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := mailer.RenderBooking(mailer.BookingForm{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		PropertyAddr:  req.PropertyAddress,
		Package:       req.Package,
		PreferredDate: req.PreferredDate,
		Notes:         req.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render booking email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	s.deliver(c, models.SubmissionKindBooking, msg, req.Name, req.Email)
}

// @Summary List submissions
// @Description List recent form submissions (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Submission
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/admin/submissions [get]
func (s *Server) listSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	subs, err := s.submissions.List(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list submissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, subs)
}
