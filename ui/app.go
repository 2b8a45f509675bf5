package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"marquee/internal"
	"marquee/ui/services"
)

// API is the read-only JSON API served by cmd/api
type API struct {
	router   *chi.Mux
	explorer *services.Explorer
	logger   *internal.Logger
}

// NewAPI creates the chi JSON API around an explorer
func NewAPI(explorer *services.Explorer, logger *internal.Logger) *API {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &API{
		router:   chi.NewRouter(),
		explorer: explorer,
		logger:   logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *API) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *API) setupRoutes() {
	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/rows", a.withView(func(v *services.View) interface{} { return v.Report.Table }))
		r.Get("/rankings", a.withView(func(v *services.View) interface{} { return v.Rankings() }))
		r.Get("/shows", a.withView(func(v *services.View) interface{} {
			return map[string][]string{"shows": v.Report.Shows}
		}))
		r.Get("/summary", a.withView(func(v *services.View) interface{} { return v.SummaryBody() }))
		r.Get("/window", a.withView(func(v *services.View) interface{} { return v.WindowBody() }))
		r.Get("/rankings.xlsx", a.handleRankingsXLSX)
		r.Post("/reload", a.handleReload)
	})
}

// ServeHTTP makes the API an http.Handler
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (a *API) Start(addr string) error {
	a.logger.Info("Starting explorer API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// withView runs the explorer for the request's query and writes body(view)
func (a *API) withView(body func(*services.View) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := a.explorer.Explore(r.Context(), services.QueryFromValues(r.URL.Query()))
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		a.writeJSON(w, http.StatusOK, body(view))
	}
}

func (a *API) handleRankingsXLSX(w http.ResponseWriter, r *http.Request) {
	view, err := a.explorer.Explore(r.Context(), services.QueryFromValues(r.URL.Query()))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", view.RankingFilename()))
	if err := services.WriteRankingXLSX(w, view); err != nil {
		a.logger.Error("ranking export failed: %v", err)
	}
}

func (a *API) handleReload(w http.ResponseWriter, r *http.Request) {
	info, err := a.explorer.Reload(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"dataset": info})
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := services.ErrorBody(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("[%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	}
	a.writeJSON(w, status, body)
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Warn("Error writing JSON response: %v", err)
	}
}
