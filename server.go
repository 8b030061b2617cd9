package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	visitorCookie = "visitor_id"
	visitorKey    = "visitorID"
	newVisitorKey = "newVisitor"
	schemeHint    = "Sec-CH-Prefers-Color-Scheme"
)

type server struct {
	cfg      *config.Config
	content  *Content
	store    *store.Store
	sessions *sessions
	memory   *memoryPreferences
	admin    *adminAuth
	sendMail func(cfg config.SMTPConfig, name, email, message string) error
}

// newServer wires the site together. db may be nil, in which case theme
// preferences live in memory and visitor tracking is off.
func newServer(cfg *config.Config, content *Content, db *store.Store) *server {
	memory := newMemoryPreferences()
	storage := memory.storage
	if db != nil {
		storage = func(visitorID string) theme.Storage { return db.Preferences(visitorID) }
	}
	logger := log.New(os.Stderr, "theme: ", log.LstdFlags)
	return &server{
		cfg:      cfg,
		content:  content,
		store:    db,
		sessions: newSessions(cfg.Theme, cfg.Session.MaxSessions, storage, logger),
		memory:   memory,
		admin:    newAdminAuth(cfg.Admin),
		sendMail: sendContactEmail,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal("Failed to load static assets:", err)
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/images", "./images")

	r.Use(visitorMiddleware())
	if s.store != nil {
		r.Use(s.visitorTrackingMiddleware())
	}

	r.GET("/", s.handleIndex)

	// HTMX fragments
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{"jobs": s.content.Jobs})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{"education": s.content.Education})
	})
	r.POST("/contact", s.handleContact)

	r.GET("/theme", s.handleGetTheme)
	r.POST("/theme", s.handleSetTheme)
	r.POST("/theme/scheme", s.handleSchemeChange)

	s.setupAdminRoutes(r)
	return r
}

// visitorMiddleware assigns every browser a stable visitor id and asks it to
// send its color scheme preference on later requests.
func visitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, id, 365*24*3600, "/", "", false, true)
			c.Set(newVisitorKey, true)
		}
		c.Set(visitorKey, id)

		c.Header("Accept-CH", schemeHint)
		c.Header("Vary", schemeHint)
		c.Header("Critical-CH", schemeHint)
		c.Next()
	}
}

// session returns the visitor's theme session. A request without a visitor
// cookie may never come back, so it is served from a transient session.
func (s *server) session(c *gin.Context) *session {
	dark, known := theme.ClientHint(c.GetHeader(schemeHint))
	if c.GetBool(newVisitorKey) {
		return s.sessions.transient(c.GetString(visitorKey), dark, known)
	}
	return s.sessions.get(c.GetString(visitorKey), dark, known)
}

func (s *server) handleIndex(c *gin.Context) {
	sess := s.session(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"content":    s.content,
		"rootClass":  sess.root.String(),
		"theme":      sess.resolver.Resolved(),
		"preference": sess.resolver.Preference(),
	})
}
