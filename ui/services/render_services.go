package services

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderService turns markdown copy into safe HTML for the page templates
type RenderService struct {
	opts html.RendererOptions
}

// NewRenderService creates a markdown renderer that drops raw HTML
func NewRenderService() *RenderService {
	return &RenderService{
		opts: html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML | html.HrefTargetBlank},
	}
}

// Markdown renders markdown source to HTML. Parsers and renderers keep
// per-document state, so each call builds its own.
func (s *RenderService) Markdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(src))
	// #nosec G203 - raw HTML is stripped by SkipHTML
	return template.HTML(markdown.Render(doc, html.NewRenderer(s.opts)))
}
