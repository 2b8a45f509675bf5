package ui

import (
	"fmt"
	"html/template"
	"net/http"

	"marquee/domain/show"
	"marquee/internal/errors"
	"marquee/ui/services"

	"github.com/gin-gonic/gin"
)

// pageData is the model of the explorer page
type pageData struct {
	Intro        template.HTML
	View         *services.View
	Summary      map[string]string
	LimitOptions []int
	Metrics      []show.Metric
	Directions   []show.Direction
	Error        string
}

// explore binds the query string and runs the explorer for it
func (s *Server) explore(c *gin.Context) (*services.View, error) {
	var q services.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	return s.explorer.Explore(c.Request.Context(), q)
}

// respondError writes the JSON error body for err
func (s *Server) respondError(c *gin.Context, err error) {
	status, body := services.ErrorBody(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[%s] %s %s: %v", c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("[%s] rejected %s: %v", c.GetString("request_id"), c.Request.URL.RawQuery, err)
	}
	c.AbortWithStatusJSON(status, body)
}

// handleIndex serves the explorer page. Invalid parameters re-render the page
// with the defaults and the validation message.
func (s *Server) handleIndex(c *gin.Context) {
	data := pageData{
		Intro:        s.intro,
		LimitOptions: s.explorer.LimitOptions(),
		Metrics:      []show.Metric{show.MetricPerformances, show.MetricGross},
		Directions:   []show.Direction{show.DirectionTop, show.DirectionBottom},
	}

	status := http.StatusOK
	view, err := s.explore(c)
	if err != nil {
		status = errors.HTTPStatus(err)
		data.Error = err.Error()
		if status == http.StatusBadRequest {
			view, err = s.explorer.Defaults(c.Request.Context())
			if err != nil {
				status = errors.HTTPStatus(err)
				data.Error = err.Error()
			}
		}
	}
	if view != nil {
		data.View = view
		data.Summary = view.Summary.Formatted()
	}

	s.renderTemplate(c, status, "index.html", data)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRows returns the filtered display table
func (s *Server) handleRows(c *gin.Context) {
	view, err := s.explore(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Report.Table)
}

// handleRankings returns the chart, ranking table and note
func (s *Server) handleRankings(c *gin.Context) {
	view, err := s.explore(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Rankings())
}

// handleRankingsXLSX downloads the ranking table as a workbook
func (s *Server) handleRankingsXLSX(c *gin.Context) {
	view, err := s.explore(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", view.RankingFilename()))
	c.Status(http.StatusOK)
	if err := services.WriteRankingXLSX(c.Writer, view); err != nil {
		s.logger.Error("[%s] ranking export failed: %v", c.GetString("request_id"), err)
	}
}

// handleShows returns the show selector options for the date window
func (s *Server) handleShows(c *gin.Context) {
	view, err := s.explore(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shows": view.Report.Shows})
}

// handleSummary returns the statistics of the filtered table
func (s *Server) handleSummary(c *gin.Context) {
	view, err := s.explore(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.SummaryBody())
}

// handleWindow returns the dataset bounds and the active range
func (s *Server) handleWindow(c *gin.Context) {
	view, err := s.explore(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.WindowBody())
}

// handleReload re-reads the data source
func (s *Server) handleReload(c *gin.Context) {
	info, err := s.explorer.Reload(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Info("Dataset reloaded from %s: %d rows kept", info.Source, info.Stats.Kept)
	c.JSON(http.StatusOK, gin.H{"dataset": info})
}
