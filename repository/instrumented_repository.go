package repository

import (
	"context"
	"time"

	"ci-computer-dashboard/metrics"
	"ci-computer-dashboard/models"
)

// InstrumentedAssetRepository records load durations of another repository
type InstrumentedAssetRepository struct {
	next   AssetRepositoryInterface
	source string
}

// NewInstrumentedAssetRepository wraps next, labelling its metrics with source
func NewInstrumentedAssetRepository(next AssetRepositoryInterface, source string) *InstrumentedAssetRepository {
	return &InstrumentedAssetRepository{next: next, source: source}
}

// Ensure InstrumentedAssetRepository implements AssetRepositoryInterface
var _ AssetRepositoryInterface = (*InstrumentedAssetRepository)(nil)

// LoadAssets delegates and observes the duration and outcome
func (r *InstrumentedAssetRepository) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	start := time.Now()
	table, err := r.next.LoadAssets(ctx)
	metrics.ObserveLoad(r.source, time.Since(start), err)
	return table, err
}
