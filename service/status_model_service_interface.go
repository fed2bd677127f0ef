package service

import (
	"context"

	"ci-computer-dashboard/models"
)

// StatusModelServiceInterface defines the contract for the install status classifier
type StatusModelServiceInterface interface {
	Train(ctx context.Context) (*models.TrainingReport, error)
}
