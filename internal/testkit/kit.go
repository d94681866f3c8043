package testkit

import (
	"context"
	"sync"

	"playpulse/domain/apps"
	"playpulse/ports"
)

// MemorySource is an in-memory AppSource for tests and demos
type MemorySource struct {
	mu      sync.RWMutex
	apps    []apps.AppRecord
	reviews []apps.ReviewRecord
	err     error
}

var _ ports.AppSource = (*MemorySource)(nil)

// NewMemorySource serves the given records
func NewMemorySource(records []apps.AppRecord, reviews []apps.ReviewRecord) *MemorySource {
	return &MemorySource{apps: records, reviews: reviews}
}

// NewGeneratedSource serves a synthetic dataset built from config
func NewGeneratedSource(config PlayStoreGeneratorConfig) *MemorySource {
	records, reviews := NewPlayStoreGenerator(config).Generate()
	return NewMemorySource(records, reviews)
}

// FailWith makes every subsequent load return err
func (s *MemorySource) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// LoadApps returns a copy of the stored apps
func (s *MemorySource) LoadApps(ctx context.Context) ([]apps.AppRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]apps.AppRecord{}, s.apps...), nil
}

// LoadReviews returns a copy of the stored reviews
func (s *MemorySource) LoadReviews(ctx context.Context) ([]apps.ReviewRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]apps.ReviewRecord{}, s.reviews...), nil
}
