package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/analytics"
	"playpulse/internal/errors"
	"playpulse/internal/report"
)

// maxBodyBytes bounds POST bodies
const maxBodyBytes = 8 << 20

// SummarizeRequest carries a numeric sample; null entries are holes
type SummarizeRequest struct {
	Values []*float64 `json:"values"`
}

// TrendRequest carries a time series; a null value is a hole
type TrendRequest struct {
	Points []TrendPointRequest `json:"points"`
}

// TrendPointRequest is one observation as sent by clients
type TrendPointRequest struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"loaded"`
	Apps    int    `json:"apps"`
	Reviews int    `json:"reviews"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	records, reviews, ok := s.service.Data()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Loaded: ok, Apps: len(records), Reviews: len(reviews)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.AnalyzeCategoryPerformance(records))
}

func (s *Server) handleMarketShare(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.CalculateMarketShare(records))
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	ratings, _ := analytics.ColumnValues(records, "rating")
	writeJSON(w, http.StatusOK, analytics.AnalyzeRatingDistribution(ratings))
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	top, err := s.topParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	field := queryOr(r, "field", "category")
	values, ok := analytics.CategoricalValues(records, field)
	if !ok {
		writeError(w, errors.InvalidInput(fmt.Sprintf("unknown categorical field %q", field)))
		return
	}
	writeJSON(w, http.StatusOK, analytics.AnalyzeFrequency(values, top))
}

func (s *Server) handleOutliers(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}

	field := queryOr(r, "field", "rating")
	values, ok := analytics.ColumnValues(records, field)
	if !ok {
		writeError(w, errors.InvalidInput(fmt.Sprintf("unknown numeric field %q", field)))
		return
	}
	writeJSON(w, http.StatusOK, analytics.DetectOutliers(values))
}

func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.AppCorrelations(records))
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	_, reviews, err := s.dataset()
	if err != nil {
		writeError(w, err)
		return
	}
	top, err := s.topParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.AnalyzeSentiment(reviews, top))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	reportType, err := report.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := s.service.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rep, err := s.reports.Generate(reportType, d)
	if err != nil {
		writeError(w, err)
		return
	}
	content, err := report.Render(rep, format)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("save") == "true" && s.reportDir != "" {
		if _, err := report.Write(s.reportDir, rep, format); err != nil {
			writeError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(rep, format)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	var req TrendRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	points := make([]stats.TrendPoint, len(req.Points))
	for i, p := range req.Points {
		points[i] = stats.TrendPoint{Date: p.Date, Value: valueOrHole(p.Value)}
	}
	writeJSON(w, http.StatusOK, analytics.AnalyzeTrend(points))
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	values := make([]float64, len(req.Values))
	for i, v := range req.Values {
		values[i] = valueOrHole(v)
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(values))
}

// dataset returns the loaded records or a NoData error
func (s *Server) dataset() ([]apps.AppRecord, []apps.ReviewRecord, error) {
	records, reviews, ok := s.service.Data()
	if !ok {
		return nil, nil, errors.NoData("dataset has not been loaded")
	}
	return records, reviews, nil
}

func (s *Server) topParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return s.service.TopN(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.InvalidInput(fmt.Sprintf("top must be a positive integer, got %q", raw))
	}
	return n, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidInput("malformed request body: " + err.Error())
	}
	return nil
}

// valueOrHole maps a JSON null onto a hole
func valueOrHole(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
