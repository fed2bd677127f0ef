package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"ci-computer-dashboard/models"
)

// PostgresAssetRepository reads the dataset from a Postgres table holding the export
type PostgresAssetRepository struct {
	db    *sql.DB
	table string
}

// NewPostgresAssetRepository creates a new PostgresAssetRepository
func NewPostgresAssetRepository(conn *sql.DB, table string) *PostgresAssetRepository {
	return &PostgresAssetRepository{db: conn, table: table}
}

// Ensure PostgresAssetRepository implements AssetRepositoryInterface
var _ AssetRepositoryInterface = (*PostgresAssetRepository)(nil)

// LoadAssets selects every row of the table
func (r *PostgresAssetRepository) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	log.Printf("🔍 LoadAssets: reading table %s", r.table)

	query := fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{r.table}.Sanitize())
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying assets: %v", err)
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	result, err := scanTable(rows)
	if err != nil {
		log.Printf("❌ Error reading assets: %v", err)
		return nil, err
	}

	table := &models.AssetTable{Columns: result.Columns}
	for _, c := range requiredColumns {
		if !table.HasColumn(c) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	table.Records = make([]models.AssetRecord, 0, len(result.Rows))
	for _, row := range result.Rows {
		values := make(map[string]string, len(row))
		for c, v := range row {
			if v != nil {
				values[c] = *v
			}
		}
		table.Records = append(table.Records, models.NewAssetRecord(values))
	}

	log.Printf("✓ Successfully fetched %d asset records from %s", table.Len(), r.table)
	return table, nil
}
