package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ci-computer-dashboard/models"
)

// QueryRepository runs read-only queries and returns their rows as a table
type QueryRepository struct {
	db *sql.DB
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(conn *sql.DB) *QueryRepository {
	return &QueryRepository{db: conn}
}

// Ensure QueryRepository implements QueryRepositoryInterface
var _ QueryRepositoryInterface = (*QueryRepository)(nil)

// QueryTable runs query and returns every row; NULL cells become missing
func (r *QueryRepository) QueryTable(ctx context.Context, query string, args ...any) (models.Table, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ QueryTable: query failed: %v", err)
		return models.Table{}, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	return scanTable(rows)
}

// scanTable reads all rows as nullable strings
func scanTable(rows *sql.Rows) (models.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to read columns: %w", err)
	}

	table := models.Table{Columns: columns, Rows: []models.TableRow{}}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return models.Table{}, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(models.TableRow, len(columns))
		for i, c := range columns {
			if cells[i].Valid {
				v := cells[i].String
				row[c] = &v
			} else {
				row[c] = nil
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return models.Table{}, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return table, nil
}
