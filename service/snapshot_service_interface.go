package service

import (
	"context"
	"net/url"
)

// SnapshotServiceInterface defines the contract for dashboard screenshots
type SnapshotServiceInterface interface {
	CaptureDashboard(ctx context.Context, variant string, query url.Values) ([]byte, error)
}
