package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/theme"
)

type themeResponse struct {
	Preference theme.Preference `json:"preference"`
	Resolved   theme.Resolved   `json:"resolved"`
	State      string           `json:"state"`
	RootClass  string           `json:"root_class"`
}

func newThemeResponse(sess *session) themeResponse {
	return themeResponse{
		Preference: sess.resolver.Preference(),
		Resolved:   sess.resolver.Resolved(),
		State:      sess.resolver.State().String(),
		RootClass:  sess.root.String(),
	}
}

func (s *server) handleGetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, newThemeResponse(s.session(c)))
}

// handleSetTheme handles POST /theme from the toggle control.
func (s *server) handleSetTheme(c *gin.Context) {
	pref, ok := theme.ParsePreference(c.PostForm("theme"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light, dark or system"})
		return
	}

	sess := s.session(c)
	resolved := sess.resolver.SetTheme(pref)

	trigger, err := json.Marshal(map[string]any{
		"themeChanged": map[string]string{"theme": string(resolved), "preference": string(pref)},
	})
	if err != nil {
		log.Printf("Error encoding HX-Trigger: %v", err)
	} else {
		c.Header("HX-Trigger", string(trigger))
	}
	c.JSON(http.StatusOK, newThemeResponse(sess))
}

// handleSchemeChange handles POST /theme/scheme, sent by the page whenever
// the OS color scheme changes while it is open.
func (s *server) handleSchemeChange(c *gin.Context) {
	dark, ok := theme.ClientHint(c.PostForm("scheme"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheme must be light or dark"})
		return
	}

	sess := s.session(c)
	sess.scheme.Set(dark)
	c.JSON(http.StatusOK, newThemeResponse(sess))
}
