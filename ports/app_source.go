package ports

import (
	"context"

	"playpulse/domain/apps"
)

// AppSource provides cleaned app listings and reviews to the analytics layer
type AppSource interface {
	LoadApps(ctx context.Context) ([]apps.AppRecord, error)
	LoadReviews(ctx context.Context) ([]apps.ReviewRecord, error)
}
