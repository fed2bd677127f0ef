package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ci-computer-dashboard/config"
)

func TestDBCheckServiceCheck(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 16.2"))
	mock.ExpectQuery(`SELECT count\(\*\) AS computers FROM cmdb_ci_computer`).
		WillReturnRows(sqlmock.NewRows([]string{"computers"}).AddRow("42"))
	mock.ExpectClose()

	var gotConnStr string
	svc := NewDBCheckService(func(ctx context.Context, connStr string) (*sql.DB, error) {
		gotConnStr = connStr
		return conn, nil
	})

	target := config.DBTarget{
		Name:     "azure",
		Host:     "db.example.net",
		Port:     "5433",
		Database: "cmdb",
		User:     "reader",
		Password: "s3cret",
		SSLMode:  "disable",
		Query:    "SELECT count(*) AS computers FROM cmdb_ci_computer",
	}
	report := svc.Check(context.Background(), target)

	assert.True(t, report.Connected)
	assert.Empty(t, report.Error)
	assert.Equal(t, "PostgreSQL 16.2", report.Version)
	assert.Contains(t, gotConnStr, "password=s3cret")
	assert.Equal(t, map[string]string{
		"host":    "db.example.net",
		"port":    "5433",
		"dbname":  "cmdb",
		"user":    "reader",
		"sslmode": "disable",
	}, report.Params)

	require.NotNil(t, report.Result)
	assert.Equal(t, []string{"computers"}, report.Result.Columns)
	assert.Equal(t, "42", report.Result.Rows[0].Cell("computers"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCheckServiceConnectFailure(t *testing.T) {
	svc := NewDBCheckService(func(ctx context.Context, connStr string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	})

	report := svc.Check(context.Background(), config.DBTarget{Name: "aws", Host: "10.0.0.1", SSLMode: "disable"})

	assert.False(t, report.Connected)
	assert.Contains(t, report.Error, "connection refused")
	assert.Equal(t, "5432", report.Params["port"])
	assert.NotContains(t, report.Params, "password")
}

func TestDBCheckServiceCheckAllKeepsOrder(t *testing.T) {
	svc := NewDBCheckService(func(ctx context.Context, connStr string) (*sql.DB, error) {
		conn, mock, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		mock.ExpectQuery(`SELECT version\(\)`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 15"))
		mock.ExpectClose()
		return conn, nil
	})

	targets := []config.DBTarget{
		{Name: "gcp", Host: "gcp.example.net", SSLMode: "disable"},
		{Name: "render", Host: "render.example.net", SSLMode: "disable"},
		{Name: "aws", Host: "aws.example.net", SSLMode: "disable"},
	}
	reports := svc.CheckAll(context.Background(), targets)

	require.Len(t, reports, 3)
	for i, r := range reports {
		assert.Equal(t, targets[i].Name, r.Target)
		assert.True(t, r.Connected)
		assert.Equal(t, "PostgreSQL 15", r.Version)
	}
}
