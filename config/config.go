package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Asset sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceDrive    = "drive"
)

// Config holds the settings read from the environment
type Config struct {
	Host    string
	Port    string
	BaseURL string

	AssetSource      string
	AssetCSVPath     string
	AssetCSVEncoding string
	AssetTable       string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	CredentialsPath string
	DriveFileID     string

	ChromePath    string
	DBTargetsFile string
}

// LoadDotEnv loads a .env file outside production.
// A missing file only logs a warning; real deployments set variables directly.
func LoadDotEnv(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		log.Printf("⚠️  .env file not found at %s, using system environment variables", path)
		return
	}
	log.Printf("✓ Loaded environment variables from %s", path)
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	port := strings.TrimPrefix(getEnv("PORT", "8051"), ":")

	cfg := &Config{
		Host:             getEnv("HOST", "0.0.0.0"),
		Port:             port,
		BaseURL:          getEnv("BASE_URL", "http://localhost:"+port),
		AssetSource:      strings.ToLower(getEnv("ASSET_SOURCE", SourceCSV)),
		AssetCSVPath:     getEnv("ASSET_CSV_PATH", "data/cmdb_ci_computer.csv"),
		AssetCSVEncoding: strings.ToLower(getEnv("ASSET_CSV_ENCODING", "latin1")),
		AssetTable:       getEnv("ASSET_TABLE", "cmdb_ci_computer"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		CredentialsPath:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFileID:      os.Getenv("DRIVE_FILE_ID"),
		ChromePath:       os.Getenv("CHROME_PATH"),
		DBTargetsFile:    getEnv("DB_TARGETS_FILE", "db_targets.yaml"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected asset source has what it needs
func (c *Config) Validate() error {
	switch c.AssetSource {
	case SourceCSV:
		if c.AssetCSVPath == "" {
			return fmt.Errorf("ASSET_CSV_PATH must be set for the csv source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" && (c.DBHost == "" || c.DBUser == "" || c.DBName == "") {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}
	case SourceDrive:
		if c.CredentialsPath == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}
		if c.DriveFileID == "" {
			return fmt.Errorf("DRIVE_FILE_ID environment variable is not set")
		}
	default:
		return fmt.Errorf("unknown ASSET_SOURCE %q (valid: csv, postgres, drive)", c.AssetSource)
	}

	switch c.AssetCSVEncoding {
	case "latin1", "iso-8859-1", "utf8", "utf-8":
	default:
		return fmt.Errorf("unknown ASSET_CSV_ENCODING %q (valid: latin1, utf8)", c.AssetCSVEncoding)
	}
	return nil
}

// ConnString returns DATABASE_URL or a keyword/value string built from the DB_* variables
func (c *Config) ConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return DBTarget{
		Host:     c.DBHost,
		Port:     c.DBPort,
		Database: c.DBName,
		User:     c.DBUser,
		Password: c.DBPassword,
		SSLMode:  c.DBSSLMode,
	}.ConnString()
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// DBTarget is one Postgres host checked by the connectivity smoke test
type DBTarget struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	// Query optionally runs after the version check and is reported as a table
	Query string `yaml:"query"`
}

// ConnString returns the keyword/value connection string of the target.
// Empty settings are left out so the driver applies its own defaults.
func (t DBTarget) ConnString() string {
	port := t.Port
	if port == "" {
		port = "5432"
	}
	sslmode := t.SSLMode
	if sslmode == "" {
		sslmode = "require"
	}

	pairs := [][2]string{
		{"host", t.Host},
		{"port", port},
		{"dbname", t.Database},
		{"user", t.User},
		{"password", t.Password},
		{"sslmode", sslmode},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		parts = append(parts, p[0]+"="+quoteConnValue(p[1]))
	}
	return strings.Join(parts, " ")
}

// quoteConnValue quotes values containing spaces or quotes
func quoteConnValue(v string) string {
	if !strings.ContainsAny(v, " '\\\t") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

type dbTargetsFile struct {
	Targets []DBTarget `yaml:"targets"`
}

// LoadDBTargets reads the smoke-test targets from a YAML file.
// ${VAR} references are expanded from the environment so secrets stay out of the file.
func LoadDBTargets(path string) ([]DBTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read db targets file: %w", err)
	}
	return ParseDBTargets(data)
}

// ParseDBTargets decodes a targets document
func ParseDBTargets(data []byte) ([]DBTarget, error) {
	var file dbTargetsFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("failed to parse db targets: %w", err)
	}

	seen := make(map[string]bool)
	for i, t := range file.Targets {
		if t.Name == "" {
			return nil, fmt.Errorf("db target %d has no name", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate db target %q", t.Name)
		}
		if t.Host == "" {
			return nil, fmt.Errorf("db target %q has no host", t.Name)
		}
		seen[t.Name] = true
	}
	return file.Targets, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
