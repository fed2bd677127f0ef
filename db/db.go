package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the shared database connection used by the postgres asset source
var DB *sql.DB

// InitDB opens the shared connection and verifies it with a ping
func InitDB(ctx context.Context, connStr string) error {
	conn, err := Open(ctx, connStr)
	if err != nil {
		return err
	}
	DB = conn

	log.Printf("✓ Database connection established successfully")
	return nil
}

// Open opens a pgx-backed *sql.DB and pings it
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, fmt.Errorf("empty database connection string")
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CloseDB closes the shared database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
