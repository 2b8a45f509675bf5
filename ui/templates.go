package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"marquee/domain/show"
	"marquee/internal/pipeline"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html content/*.md
var embeddedFiles embed.FS

// parseTemplates loads the embedded page templates with the explorer helpers
func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"money": func(v float64) string { return pipeline.FormatCurrency(v, show.ScaleOnes) },
		"num":   pipeline.FormatNumber,
		"count": func(n int) string { return pipeline.FormatNumber(float64(n)) },
		"isoDate": func(t time.Time) string { return t.Format(show.ISODateLayout) },
		// pct returns v as a percentage of max for CSS bar widths
		"pct": func(v, max float64) float64 {
			if max <= 0 {
				return 0
			}
			return v / max * 100
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// loadIntro reads the markdown copy shown above the explorer form
func loadIntro() (string, error) {
	content, err := embeddedFiles.ReadFile("content/intro.md")
	if err != nil {
		return "", fmt.Errorf("failed to read intro: %w", err)
	}
	return string(content), nil
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("Error writing template response: %v", err)
	}
}
