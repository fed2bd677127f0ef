package service

import (
	"context"
	"errors"
	"io"
)

// ErrUnknownChart is returned for a chart name that has no renderer
var ErrUnknownChart = errors.New("unknown chart")

// ChartServiceInterface defines the contract for chart rendering
type ChartServiceInterface interface {
	Render(ctx context.Context, name string, machineUses []string, w io.Writer) error
}
