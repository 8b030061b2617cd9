// admin.go - privacy-conscious admin dashboard over visits and theme choices
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

const (
	adminCookie     = "admin_token"
	visitRetention  = 365 * 24 * time.Hour
	recentVisitRows = 50
)

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

func newAdminAuth(cfg config.AdminConfig) *adminAuth {
	a := &adminAuth{
		token:    generateAdminToken(),
		salt:     generateAdminToken(), // used for IP hashing
		username: cfg.Username,
		password: cfg.Password,
	}

	// Default credentials for development only
	if a.username == "" {
		a.username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if a.password == "" {
		a.password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// hashIP is consistent per IP for the lifetime of the process.
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/theme") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}

		// Respect Do Not Track
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed, userAgent := s.admin.hashIP(c.ClientIP()), c.GetHeader("User-Agent")
		go func() {
			if err := s.store.RecordVisit(hashed, userAgent, path); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

func (s *server) cleanupOldVisitorData() {
	if s.store == nil {
		return
	}
	removed, err := s.store.CleanupVisits(visitRetention)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", removed)
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", s.admin.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.admin.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.adminStats()
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sessions": s.sessions.count(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.adminStats()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.adminStats()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		go s.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})
}

var errNoDatabase = errors.New("statistics unavailable: no database configured")

func (s *server) adminStats() (*store.Stats, error) {
	if s.store == nil {
		return nil, errNoDatabase
	}
	return s.store.Stats(s.cfg.Theme.StorageKey, recentVisitRows)
}
