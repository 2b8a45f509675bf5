package services

import (
	"fmt"
	"io"

	"marquee/adapters/excel"
	"marquee/internal/errors"
	"marquee/internal/pipeline"
	"marquee/internal/summary"
)

// RankingsPayload is the JSON body of the rankings endpoint
type RankingsPayload struct {
	Metric    string                 `json:"metric"`
	Direction string                 `json:"direction"`
	Limit     int                    `json:"limit"`
	Chart     pipeline.Chart        `json:"chart"`
	Ranking   []pipeline.RankingRow `json:"ranking"`
	Note      string                `json:"note,omitempty"`
}

// SummaryPayload is the JSON body of the summary endpoint
type SummaryPayload struct {
	Summary   summary.Summary   `json:"summary"`
	Formatted map[string]string `json:"formatted"`
}

// WindowPayload is the JSON body of the window endpoint
type WindowPayload struct {
	Dataset DatasetInfo     `json:"dataset"`
	Window  pipeline.Window `json:"window"`
}

// ErrorPayload is the JSON body of every failed API call
type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Rankings extracts the chart, ranking table and note from a view
func (v *View) Rankings() RankingsPayload {
	return RankingsPayload{
		Metric:    string(v.Report.Params.Metric),
		Direction: string(v.Report.Params.Direction),
		Limit:     v.Report.Params.Limit,
		Chart:     v.Report.Chart,
		Ranking:   v.Report.Ranking,
		Note:      v.Report.Note,
	}
}

// SummaryBody pairs the window summary with its display strings
func (v *View) SummaryBody() SummaryPayload {
	return SummaryPayload{Summary: v.Summary, Formatted: v.Summary.Formatted()}
}

// WindowBody returns the dataset bounds and the active date range
func (v *View) WindowBody() WindowPayload {
	return WindowPayload{Dataset: v.Dataset, Window: v.Report.Window}
}

// RankingFilename names the XLSX download for a view
func (v *View) RankingFilename() string {
	p := v.Report.Params
	return fmt.Sprintf("%s-%d-%s.xlsx", p.Direction, p.Limit, p.Metric)
}

// WriteRankingXLSX writes the view's ranking table and note as a workbook
func WriteRankingXLSX(w io.Writer, v *View) error {
	return excel.WriteRanking(w, v.Report.Ranking, v.Report.Note)
}

// ErrorBody maps err to an HTTP status and JSON body
func ErrorBody(err error) (int, ErrorPayload) {
	code := errors.GetCode(err)
	if !errors.IsAppError(err) {
		code = errors.CodeInternalError
	}
	return errors.HTTPStatus(err), ErrorPayload{Error: err.Error(), Code: code}
}
