package service

import (
	"context"

	"ci-computer-dashboard/config"
	"ci-computer-dashboard/models"
)

// DBCheckServiceInterface defines the contract for database connectivity checks
type DBCheckServiceInterface interface {
	Check(ctx context.Context, target config.DBTarget) models.ConnectionReport
	CheckAll(ctx context.Context, targets []config.DBTarget) []models.ConnectionReport
}
