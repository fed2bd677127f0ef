package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"ci-computer-dashboard/metrics"
	"ci-computer-dashboard/models"
	"ci-computer-dashboard/repository"
	"ci-computer-dashboard/summary"
)

// ErrUnknownVariant is returned for a dashboard variant that has no layout
var ErrUnknownVariant = errors.New("unknown dashboard variant")

// v4DefaultColumns are the columns shown before the user picks any
var v4DefaultColumns = []string{
	models.ColumnName,
	models.ColumnAssetTag,
	models.ColumnAsset,
	models.ColumnDepartment,
	models.ColumnLocation,
}

// layout describes which derived views a dashboard variant displays
type layout struct {
	title              string
	summaryTable       bool
	charts             []string
	columnList         bool
	columnSelector     bool
	fixedColumns       bool // offer StandardColumns instead of the file header
	defaultColumns     []string
	machineUseSelector bool
	firstMachineUse    bool // default to the first option instead of all of them
	pageSize           int
}

var layouts = map[string]layout{
	models.VariantTable: {
		title:        "Asset Tag Count Summary",
		summaryTable: true,
		pageSize:     100,
	},
	models.VariantV1: {
		title:        "Mayenne Computer Asset Summary",
		summaryTable: true,
		charts:       []string{ChartPrefixBar},
		columnList:   true,
		pageSize:     100,
	},
	models.VariantV2: {
		title:          "Mayenne Computer Asset Summary",
		charts:         []string{ChartAssetTagPie, ChartDeviceScatter},
		columnSelector: true,
		pageSize:       100,
	},
	models.VariantV3: {
		title:              "Mayenne Computer Asset Summary",
		charts:             []string{ChartPrefixPie, ChartDeviceBar},
		columnSelector:     true,
		fixedColumns:       true,
		machineUseSelector: true,
		pageSize:           100,
	},
	models.VariantV4: {
		title:              "Mayenne Computer Asset Summary",
		charts:             []string{ChartAssetTagPie, ChartVersionBar},
		columnSelector:     true,
		defaultColumns:     v4DefaultColumns,
		machineUseSelector: true,
		firstMachineUse:    true,
		pageSize:           10,
	},
}

// Variants returns the known dashboard variants in route order
func Variants() []string {
	return []string{models.VariantTable, models.VariantV1, models.VariantV2, models.VariantV3, models.VariantV4}
}

// DashboardService derives every dashboard view from a freshly loaded dataset
type DashboardService struct {
	repository repository.AssetRepositoryInterface
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo repository.AssetRepositoryInterface) *DashboardService {
	return &DashboardService{repository: repo}
}

// Ensure DashboardService implements DashboardServiceInterface
var _ DashboardServiceInterface = (*DashboardService)(nil)

// LoadAssets loads the dataset for one render
func (s *DashboardService) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	table, err := s.repository.LoadAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	return table, nil
}

// Summary returns the year-prefix summary
func (s *DashboardService) Summary(ctx context.Context) (models.AssetSummary, error) {
	table, err := s.LoadAssets(ctx)
	if err != nil {
		return models.AssetSummary{}, err
	}
	metrics.RecordView("summary")
	return summary.Summarize(table), nil
}

// AssetTagCounts returns the value counts of asset_tag
func (s *DashboardService) AssetTagCounts(ctx context.Context) ([]models.ValueCount, error) {
	table, err := s.LoadAssets(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordView("asset-tags")
	return summary.CountValues(table.Records, models.ColumnAssetTag), nil
}

// DeviceGroups returns (device type, machine use) counts restricted to the selected machine uses.
// A nil selection means every machine use.
func (s *DashboardService) DeviceGroups(ctx context.Context, machineUses []string) ([]models.DeviceCategoryCount, error) {
	table, err := s.LoadAssets(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordView("devices")

	groups := summary.GroupByDeviceType(table.Records, models.ColumnBuildMachineUse)
	if machineUses == nil {
		return groups, nil
	}
	return summary.FilterCategories(groups, machineUses), nil
}

// VersionGroups returns (version, device type) counts for the selected machine uses
func (s *DashboardService) VersionGroups(ctx context.Context, machineUses []string) ([]models.VersionDeviceCount, error) {
	table, err := s.LoadAssets(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordView("versions")

	if machineUses == nil {
		machineUses = summary.DistinctValues(table.Records, models.ColumnBuildMachineUse)
	}
	return summary.GroupByVersion(table.Records, machineUses), nil
}

// DevicePoints returns the device type scatter data
func (s *DashboardService) DevicePoints(ctx context.Context) ([]models.DevicePoint, error) {
	table, err := s.LoadAssets(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordView("device-points")
	return summary.DevicePoints(table.Records), nil
}

// Table projects the dataset onto columns; nil means every column of the file
func (s *DashboardService) Table(ctx context.Context, columns []string) (models.Table, error) {
	table, err := s.LoadAssets(ctx)
	if err != nil {
		return models.Table{}, err
	}
	metrics.RecordView("table")

	if columns == nil {
		columns = table.Columns
	}
	return summary.ProjectColumns(table, columns)
}

// BuildView renders the view of a dashboard variant for one selection
func (s *DashboardService) BuildView(ctx context.Context, variant string, sel models.Selection) (*models.DashboardView, error) {
	l, ok := layouts[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}

	table, err := s.LoadAssets(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordView(variant)

	view := &models.DashboardView{
		Variant:  variant,
		Title:    l.title,
		PageSize: l.pageSize,
	}

	if l.summaryTable {
		sum := summary.Summarize(table)
		view.Summary = &sum
	}
	if l.columnList {
		view.AvailableColumns = table.Columns
	}

	columns := table.Columns
	if l.columnSelector {
		view.ColumnSelector = true
		view.ColumnOptions = table.Columns
		if l.fixedColumns {
			view.ColumnOptions = summary.AvailableColumns(table, models.StandardColumns)
		}

		switch {
		case sel.Columns != nil:
			columns = sel.Columns
		case l.defaultColumns != nil:
			columns = summary.AvailableColumns(table, l.defaultColumns)
		default:
			columns = view.ColumnOptions
		}
	}

	if l.machineUseSelector {
		view.MachineUseSelector = true
		view.MachineUseOptions = summary.DistinctValues(table.Records, models.ColumnBuildMachineUse)

		switch {
		case sel.MachineUses != nil:
			view.SelectedMachineUses = sel.MachineUses
		case l.firstMachineUse:
			// options are sorted; the default is the first value in file order
			view.SelectedMachineUses = []string{}
			if first, ok := summary.FirstValue(table.Records, models.ColumnBuildMachineUse); ok {
				view.SelectedMachineUses = []string{first}
			}
		default:
			view.SelectedMachineUses = view.MachineUseOptions
		}
	}

	projected, err := summary.ProjectColumns(table, columns)
	if err != nil {
		return nil, err
	}
	view.SelectedColumns = projected.Columns
	view.TotalRows = projected.RowCount()
	view.Table, view.Page, view.PageCount = paginate(projected, sel.Page, l.pageSize)

	for _, name := range l.charts {
		view.Charts = append(view.Charts, models.ChartRef{
			Name:  name,
			Title: chartHeaders[name],
			URL:   chartURL(name, view.SelectedMachineUses, l.machineUseSelector),
		})
	}

	log.Printf("📊 BuildView: variant=%s rows=%d columns=%d page=%d/%d",
		variant, view.TotalRows, len(view.SelectedColumns), view.Page, view.PageCount)
	return view, nil
}

// paginate returns the rows of one 1-based page, clamping the page into range
func paginate(t models.Table, page, size int) (models.Table, int, int) {
	total := len(t.Rows)
	if size <= 0 {
		return t, 1, 1
	}

	pageCount := (total + size - 1) / size
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return models.Table{Columns: t.Columns, Rows: t.Rows[start:end]}, page, pageCount
}

// chartURL builds the route of a chart, carrying the machine use selection
func chartURL(name string, machineUses []string, withSelection bool) string {
	u := "/charts/" + name
	if !withSelection || (name != ChartDeviceBar && name != ChartVersionBar) {
		return u
	}

	q := url.Values{}
	if len(machineUses) == 0 {
		q.Set("machine_use", "")
	}
	for _, m := range machineUses {
		q.Add("machine_use", m)
	}
	return u + "?" + q.Encode()
}
