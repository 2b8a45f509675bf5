package ui

import (
	"html/template"
	"net/http"

	"marquee/internal"
	"marquee/ui/services"

	"github.com/gin-gonic/gin"
)

// Server is the explorer web server: the HTML page plus its JSON API
type Server struct {
	router    *gin.Engine
	explorer  *services.Explorer
	renderer  *services.RenderService
	templates *template.Template
	logger    *internal.Logger
	intro     template.HTML
}

// NewServer creates a new web server instance with templates and routes ready
func NewServer(explorer *services.Explorer, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	intro, err := loadIntro()
	if err != nil {
		return nil, err
	}

	renderer := services.NewRenderService()
	s := &Server{
		router:    gin.New(),
		explorer:  explorer,
		renderer:  renderer,
		templates: templates,
		logger:    logger,
		intro:     renderer.Markdown(intro),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/rows", s.handleRows)
	api.GET("/rankings", s.handleRankings)
	api.GET("/rankings.xlsx", s.handleRankingsXLSX)
	api.GET("/shows", s.handleShows)
	api.GET("/summary", s.handleSummary)
	api.GET("/window", s.handleWindow)
	api.POST("/reload", s.handleReload)
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting explorer UI on http://%s", addr)
	return s.router.Run(addr)
}
