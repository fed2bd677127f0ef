package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "HOST", "BASE_URL", "ASSET_SOURCE", "ASSET_CSV_PATH", "ASSET_CSV_ENCODING"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8051", cfg.Port)
	assert.Equal(t, "0.0.0.0:8051", cfg.Addr())
	assert.Equal(t, "http://localhost:8051", cfg.BaseURL)
	assert.Equal(t, SourceCSV, cfg.AssetSource)
	assert.Equal(t, "latin1", cfg.AssetCSVEncoding)
}

func TestLoadStripsPortColon(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("ASSET_SOURCE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"csv ok", Config{AssetSource: SourceCSV, AssetCSVPath: "a.csv", AssetCSVEncoding: "latin1"}, false},
		{"csv missing path", Config{AssetSource: SourceCSV, AssetCSVEncoding: "latin1"}, true},
		{"postgres url", Config{AssetSource: SourcePostgres, DatabaseURL: "postgres://x", AssetCSVEncoding: "utf8"}, false},
		{"postgres missing", Config{AssetSource: SourcePostgres, DBHost: "h", AssetCSVEncoding: "utf8"}, true},
		{"drive missing file", Config{AssetSource: SourceDrive, CredentialsPath: "c.json", AssetCSVEncoding: "utf8"}, true},
		{"unknown source", Config{AssetSource: "s3", AssetCSVEncoding: "utf8"}, true},
		{"unknown encoding", Config{AssetSource: SourceCSV, AssetCSVPath: "a.csv", AssetCSVEncoding: "cp1252"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConnString(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 dbname=n user=u password=p sslmode=disable", cfg.ConnString())

	cfg.DatabaseURL = "postgres://u:p@db/n"
	assert.Equal(t, "postgres://u:p@db/n", cfg.ConnString())
}

func TestParseDBTargetsExpandsEnv(t *testing.T) {
	t.Setenv("RENDER_DB_PASSWORD", "s3cret")

	targets, err := ParseDBTargets([]byte(`
targets:
  - name: render
    host: render.example.com
    database: ndb
    user: numan
    password: ${RENDER_DB_PASSWORD}
  - name: gcp
    host: 10.0.0.1
    port: "6543"
    database: postgres
    user: postgres
    sslmode: disable
    query: SELECT * FROM testTbl
`))
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "s3cret", targets[0].Password)
	assert.Equal(t, "host=render.example.com port=5432 dbname=ndb user=numan password=s3cret sslmode=require", targets[0].ConnString())
	assert.Equal(t, "SELECT * FROM testTbl", targets[1].Query)
	assert.Contains(t, targets[1].ConnString(), "port=6543")
}

func TestParseDBTargetsRejectsBadEntries(t *testing.T) {
	_, err := ParseDBTargets([]byte("targets:\n  - host: h\n"))
	assert.Error(t, err)

	_, err = ParseDBTargets([]byte("targets:\n  - name: a\n    host: h\n  - name: a\n    host: h\n"))
	assert.Error(t, err)

	_, err = ParseDBTargets([]byte("targets:\n  - name: a\n"))
	assert.Error(t, err)
}

func TestLoadDBTargetsMissingFile(t *testing.T) {
	_, err := LoadDBTargets(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestLoadDBTargetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets:\n  - name: aws\n    host: rds.example.com\n"), 0644))

	targets, err := LoadDBTargets(path)
	require.NoError(t, err)
	assert.Equal(t, "aws", targets[0].Name)
}

func TestDBTargetConnStringOmitsEmptyAndQuotes(t *testing.T) {
	target := DBTarget{Name: "gcp", Host: "10.0.0.5", Password: "it's a secret", SSLMode: "disable"}
	assert.Equal(t, `host=10.0.0.5 port=5432 password='it\'s a secret' sslmode=disable`, target.ConnString())
}
