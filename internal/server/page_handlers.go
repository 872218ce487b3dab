package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "templates/*.html"))

// sampleBooking is a placeholder row for the dashboard table shown before
// live bookings load from the API
type sampleBooking struct {
	Reference string
	Property  string
	Package   string
	Date      string
	Status    string
}

var sampleBookings = []sampleBooking{
	{"SP-1042", "12 Harbourview Terrace", "Photo + Floorplan", "2026-09-04", "Scheduled"},
	{"SP-1041", "8/301 Beachside Ave", "Drone + Twilight", "2026-09-02", "Delivered"},
	{"SP-1038", "45 Gumtree Lane", "Full Media Suite", "2026-08-28", "Delivered"},
}

func (s *Server) pageData(c *gin.Context, title string) gin.H {
	data := gin.H{
		"Title":      title,
		"ShowSignup": s.config.ShowSignup,
		"Version":    s.version,
	}
	if user, ok := GetSessionUser(c); ok {
		data["User"] = user
	}
	return data
}

func (s *Server) homePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", s.pageData(c, "Surface Planner"))
}

func (s *Server) faqsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "faqs.html", s.pageData(c, "FAQs"))
}

func (s *Server) termsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "terms.html", s.pageData(c, "Terms of Service"))
}

func (s *Server) loginPage(c *gin.Context) {
	data := s.pageData(c, "Sign in")
	data["CallbackURL"] = sanitizeCallback(c.Query("callbackUrl"))
	c.HTML(http.StatusOK, "login.html", data)
}

func (s *Server) dashboardPage(c *gin.Context) {
	data := s.pageData(c, "Dashboard")
	data["Bookings"] = sampleBookings
	c.HTML(http.StatusOK, "dashboard.html", data)
}
