package service

import (
	"context"

	"ci-computer-dashboard/models"
)

// ScraperServiceInterface defines the contract for cart page scraping
type ScraperServiceInterface interface {
	ScrapeFile(path string) ([]models.CartItem, error)
	ScrapeURL(ctx context.Context, url string) ([]models.CartItem, error)
}
