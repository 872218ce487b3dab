package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary List bookings
// @Description Forward the bookings listing to the backend
// @Tags bookings
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/bookings [get]
func (s *Server) listBookings(c *gin.Context) {
	path := "/api/bookings"
	if q := c.Request.URL.RawQuery; q != "" {
		path += "?" + q
	}

	resp, err := s.relay.Forward(c.Request.Context(), http.MethodGet, path, c.GetHeader("Cookie"), nil)
	s.relayResponse(c, resp, err, "Failed to fetch bookings")
}

// @Summary Create booking
// @Description Forward a booking submission to the backend
// @Tags bookings
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/bookings [post]
func (s *Server) createBooking(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be valid JSON"})
		return
	}

	resp, err := s.relay.Forward(
		c.Request.Context(),
		http.MethodPost,
		"/api/bookings",
		c.GetHeader("Cookie"),
		json.RawMessage(body),
	)
	s.relayResponse(c, resp, err, "Failed to create booking")
}
