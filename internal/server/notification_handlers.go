package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surfaceplanner/surfaced/internal/proxy"
)

// relayResponse converts an upstream answer into this gateway's response:
// 2xx JSON bodies are relayed verbatim, upstream failures keep their
// status code wrapped in an error envelope, and transport or parse
// failures become a generic 500.
func (s *Server) relayResponse(c *gin.Context, resp *proxy.Response, err error, errMessage string) {
	if err != nil {
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Upstream request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !resp.OK() {
		c.JSON(resp.StatusCode, gin.H{"error": errMessage, "details": string(resp.Body)})
		return
	}

	if !json.Valid(resp.Body) {
		s.logger.Error().Str("path", c.Request.URL.Path).Msg("Upstream returned invalid JSON")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Body)
}

// @Summary Mark notification as read
// @Description Forward a single-notification read receipt to the backend
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/notifications/{id}/read [patch]
func (s *Server) markNotificationRead(c *gin.Context) {
	id := c.Param("id")

	resp, err := s.relay.Forward(
		c.Request.Context(),
		http.MethodPatch,
		"/api/notifications/"+id,
		c.GetHeader("Cookie"),
		gin.H{"isRead": true},
	)
	s.relayResponse(c, resp, err, "Failed to update notification")
}

// @Summary Mark all notifications as read
// @Description Forward a mark-all read receipt to the backend
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/notifications/mark-all-read [patch]
func (s *Server) markAllNotificationsRead(c *gin.Context) {
	resp, err := s.relay.Forward(
		c.Request.Context(),
		http.MethodPatch,
		"/api/notifications/mark-all-read",
		c.GetHeader("Cookie"),
		nil,
	)
	s.relayResponse(c, resp, err, "Failed to update notifications")
}
