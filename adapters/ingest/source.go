package ingest

import (
	"context"
	"log"
	"time"

	"playpulse/adapters/excel"
	"playpulse/domain/apps"
	"playpulse/internal/errors"
	"playpulse/ports"
)

// Stats counts what ingestion kept and dropped
type Stats struct {
	RowsRead    int `json:"rowsRead"`
	RowsKept    int `json:"rowsKept"`
	RowsSkipped int `json:"rowsSkipped"`
}

// FileSource loads apps and reviews from CSV or XLSX files
type FileSource struct {
	appsPath    string
	reviewsPath string
	sheet       string
	coercer     *Coercer

	appStats    Stats
	reviewStats Stats
}

var _ ports.AppSource = (*FileSource)(nil)

// NewFileSource creates a file-backed source. reviewsPath may be empty.
func NewFileSource(appsPath, reviewsPath, sheet string, coercer *Coercer) *FileSource {
	if coercer == nil {
		coercer = NewCoercer(DefaultCoercionConfig())
	}
	return &FileSource{
		appsPath:    appsPath,
		reviewsPath: reviewsPath,
		sheet:       sheet,
		coercer:     coercer,
	}
}

// LoadApps reads and coerces every app listing
func (s *FileSource) LoadApps(ctx context.Context) ([]apps.AppRecord, error) {
	if s.appsPath == "" {
		return nil, errors.ConfigInvalid("apps file is not configured")
	}

	start := time.Now()
	data, err := excel.NewDataReader(s.appsPath, s.sheet).ReadData(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read apps from %s", s.appsPath)
	}
	if !data.HasColumns(ColApp, ColCategory) {
		return nil, errors.ValidationError("apps file must have App and Category columns")
	}

	records, stats := s.coerceApps(data.Rows)
	s.appStats = stats
	log.Printf("[Ingest] Loaded %d apps from %s in %v (%d skipped)",
		stats.RowsKept, s.appsPath, time.Since(start), stats.RowsSkipped)
	return records, nil
}

// LoadReviews reads and coerces every review; no reviews file yields an empty set
func (s *FileSource) LoadReviews(ctx context.Context) ([]apps.ReviewRecord, error) {
	if s.reviewsPath == "" {
		return []apps.ReviewRecord{}, nil
	}

	start := time.Now()
	data, err := excel.NewDataReader(s.reviewsPath, s.sheet).ReadData(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read reviews from %s", s.reviewsPath)
	}
	if !data.HasColumns(ColApp) {
		return nil, errors.ValidationError("reviews file must have an App column")
	}

	records := make([]apps.ReviewRecord, 0, len(data.Rows))
	stats := Stats{RowsRead: len(data.Rows)}
	for _, row := range data.Rows {
		review := s.coercer.CoerceReview(row)
		if review.App == "" {
			stats.RowsSkipped++
			continue
		}
		records = append(records, review)
	}
	stats.RowsKept = len(records)
	s.reviewStats = stats

	log.Printf("[Ingest] Loaded %d reviews from %s in %v (%d skipped)",
		stats.RowsKept, s.reviewsPath, time.Since(start), stats.RowsSkipped)
	return records, nil
}

// AppStats returns the counts of the last LoadApps call
func (s *FileSource) AppStats() Stats { return s.appStats }

// ReviewStats returns the counts of the last LoadReviews call
func (s *FileSource) ReviewStats() Stats { return s.reviewStats }

func (s *FileSource) coerceApps(rows []excel.RawRowData) ([]apps.AppRecord, Stats) {
	records := make([]apps.AppRecord, 0, len(rows))
	stats := Stats{RowsRead: len(rows)}
	for _, row := range rows {
		app, ok := s.coercer.CoerceApp(row)
		if !ok {
			stats.RowsSkipped++
			continue
		}
		records = append(records, app)
	}
	stats.RowsKept = len(records)
	return records, stats
}
