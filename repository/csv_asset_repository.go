package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"ci-computer-dashboard/models"
)

// ErrMissingColumn is returned when the export lacks a column every view relies on
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns must be present in every export
var requiredColumns = []string{models.ColumnAssetTag, models.ColumnName}

// naTokens are the cell texts read as missing values
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// CSVAssetRepository reads the dataset from a local CSV export
type CSVAssetRepository struct {
	path     string
	encoding string
}

// NewCSVAssetRepository creates a new CSVAssetRepository
func NewCSVAssetRepository(path, encoding string) *CSVAssetRepository {
	return &CSVAssetRepository{path: path, encoding: encoding}
}

// Ensure CSVAssetRepository implements AssetRepositoryInterface
var _ AssetRepositoryInterface = (*CSVAssetRepository)(nil)

// LoadAssets reads and parses the whole file
func (r *CSVAssetRepository) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	f, err := os.Open(r.path)
	if err != nil {
		log.Printf("❌ LoadAssets: cannot open %s: %v", r.path, err)
		return nil, fmt.Errorf("failed to open asset file: %w", err)
	}
	defer f.Close()

	table, err := ParseAssetCSV(f, r.encoding)
	if err != nil {
		log.Printf("❌ LoadAssets: cannot parse %s: %v", r.path, err)
		return nil, err
	}

	log.Printf("✓ Loaded %d asset records from %s", table.Len(), r.path)
	return table, nil
}

// ParseAssetCSV parses a comma-separated export with a header row.
// encoding is "latin1"/"iso-8859-1" or "utf8"/"utf-8".
// Short rows leave the trailing cells missing; long rows are an error.
func ParseAssetCSV(rd io.Reader, encoding string) (*models.AssetTable, error) {
	switch strings.ToLower(encoding) {
	case "", "latin1", "iso-8859-1":
		rd = charmap.ISO8859_1.NewDecoder().Reader(rd)
	case "utf8", "utf-8":
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1
	// free-text cells such as `Dell 24" monitor` carry bare quotes
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty asset file: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header = renameDuplicateColumns(header)

	table := &models.AssetTable{Columns: header}
	for _, c := range requiredColumns {
		if !table.HasColumn(c) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		if len(fields) > len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(fields))
		}

		values := make(map[string]string, len(header))
		for i, v := range fields {
			if naTokens[v] {
				continue
			}
			values[header[i]] = v
		}
		table.Records = append(table.Records, models.NewAssetRecord(values))
	}

	return table, nil
}

// renameDuplicateColumns suffixes repeated header names as name.1, name.2, ...
// skipping any suffixed name the header already uses.
func renameDuplicateColumns(header []string) []string {
	used := make(map[string]bool, len(header))
	for _, h := range header {
		used[h] = true
	}

	seen := make(map[string]int, len(header))
	for i, h := range header {
		n := seen[h]
		seen[h] = n + 1
		if n == 0 {
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for used[name] {
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		used[name] = true
		header[i] = name
	}
	return header
}
