package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"ci-computer-dashboard/config"
	"ci-computer-dashboard/db"
	"ci-computer-dashboard/models"
	"ci-computer-dashboard/repository"
)

// OpenFunc opens and pings a database connection
type OpenFunc func(ctx context.Context, connStr string) (*sql.DB, error)

// DBCheckService verifies that configured Postgres hosts accept connections
type DBCheckService struct {
	open OpenFunc
}

// NewDBCheckService creates a new DBCheckService.
// A nil open func uses db.Open.
func NewDBCheckService(open OpenFunc) *DBCheckService {
	if open == nil {
		open = db.Open
	}
	return &DBCheckService{open: open}
}

// Ensure DBCheckService implements DBCheckServiceInterface
var _ DBCheckServiceInterface = (*DBCheckService)(nil)

// Check connects to one target, reads the server version and runs the optional query.
// Failures are reported in the result rather than returned.
func (s *DBCheckService) Check(ctx context.Context, target config.DBTarget) models.ConnectionReport {
	report := models.ConnectionReport{
		Target: target.Name,
		Query:  target.Query,
	}

	connStr := target.ConnString()
	params, err := connectionParams(connStr, target)
	if err != nil {
		report.Error = err.Error()
		log.Printf("❌ DB check %s: %v", target.Name, err)
		return report
	}
	report.Params = params

	conn, err := s.open(ctx, connStr)
	if err != nil {
		report.Error = err.Error()
		log.Printf("❌ DB check %s: %v", target.Name, err)
		return report
	}
	defer conn.Close()
	report.Connected = true

	if err := conn.QueryRowContext(ctx, "SELECT version()").Scan(&report.Version); err != nil {
		report.Error = fmt.Sprintf("failed to read server version: %v", err)
		log.Printf("⚠️  DB check %s: %s", target.Name, report.Error)
		return report
	}

	if target.Query != "" {
		table, err := repository.NewQueryRepository(conn).QueryTable(ctx, target.Query)
		if err != nil {
			report.Error = err.Error()
			log.Printf("⚠️  DB check %s: %v", target.Name, err)
			return report
		}
		report.Result = &table
	}

	log.Printf("✓ DB check %s: connected (%s)", target.Name, report.Version)
	return report
}

// CheckAll checks every target concurrently; reports keep the targets' order
func (s *DBCheckService) CheckAll(ctx context.Context, targets []config.DBTarget) []models.ConnectionReport {
	reports := make([]models.ConnectionReport, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			reports[i] = s.Check(gctx, target)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// connectionParams echoes the parsed connection settings without the password
func connectionParams(connStr string, target config.DBTarget) (map[string]string, error) {
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection settings: %w", err)
	}

	sslmode := target.SSLMode
	if sslmode == "" {
		sslmode = "require"
	}
	return map[string]string{
		"host":    cfg.Host,
		"port":    strconv.Itoa(int(cfg.Port)),
		"dbname":  cfg.Database,
		"user":    cfg.User,
		"sslmode": sslmode,
	}, nil
}
