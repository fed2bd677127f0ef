package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"ci-computer-dashboard/models"
)

// Chart names, used as route segments
const (
	ChartPrefixBar     = "prefix-bar"
	ChartPrefixPie     = "prefix-pie"
	ChartAssetTagPie   = "asset-tag-pie"
	ChartDeviceScatter = "device-scatter"
	ChartDeviceBar     = "device-bar"
	ChartVersionBar    = "version-bar"
)

// chartHeaders are the card headers shown above each chart
var chartHeaders = map[string]string{
	ChartPrefixBar:     "Asset Tag Yearly Distribution",
	ChartPrefixPie:     "Asset Tag Distribution",
	ChartAssetTagPie:   "Asset Tag Distribution",
	ChartDeviceScatter: "Device Type Scatter Plot",
	ChartDeviceBar:     "Device Type vs Build Type (Bar Plot)",
	ChartVersionBar:    "Desktop vs Laptop Count by Version",
}

var deviceColors = map[models.DeviceType]string{
	models.DeviceDesktop: "red",
	models.DeviceLaptop:  "green",
}

// renderer is implemented by every go-echarts chart
type renderer interface {
	Render(w io.Writer) error
}

// ChartService renders the dashboard charts as standalone HTML documents
type ChartService struct {
	dashboard DashboardServiceInterface
}

// NewChartService creates a new ChartService
func NewChartService(dashboard DashboardServiceInterface) *ChartService {
	return &ChartService{dashboard: dashboard}
}

// Ensure ChartService implements ChartServiceInterface
var _ ChartServiceInterface = (*ChartService)(nil)

// Render writes chart name for the given machine use selection (nil means all)
func (s *ChartService) Render(ctx context.Context, name string, machineUses []string, w io.Writer) error {
	var chart renderer

	switch name {
	case ChartPrefixBar, ChartPrefixPie:
		sum, err := s.dashboard.Summary(ctx)
		if err != nil {
			return err
		}
		if name == ChartPrefixBar {
			chart = PrefixBarChart(sum.PrefixCounts)
		} else {
			chart = PrefixPieChart(sum.PrefixCounts)
		}

	case ChartAssetTagPie:
		counts, err := s.dashboard.AssetTagCounts(ctx)
		if err != nil {
			return err
		}
		chart = AssetTagPieChart(counts)

	case ChartDeviceScatter:
		points, err := s.dashboard.DevicePoints(ctx)
		if err != nil {
			return err
		}
		chart = DeviceScatterChart(points)

	case ChartDeviceBar:
		groups, err := s.dashboard.DeviceGroups(ctx, machineUses)
		if err != nil {
			return err
		}
		chart = DeviceBarChart(groups, machineUses)

	case ChartVersionBar:
		if machineUses != nil && len(machineUses) == 0 {
			chart = VersionBarChart(nil, true)
			break
		}
		groups, err := s.dashboard.VersionGroups(ctx, machineUses)
		if err != nil {
			return err
		}
		chart = VersionBarChart(groups, false)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}

	if err := chart.Render(w); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", name, err)
	}
	return nil
}

func baseOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	}
}

// PrefixBarChart plots the count per year prefix with the value on top of each bar
func PrefixBarChart(counts []models.PrefixCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Asset Tag Count by Year")...)

	x := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		x[i] = c.Prefix
		data[i] = opts.BarData{Value: c.Count}
	}

	bar.SetXAxis(x).AddSeries("Count", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

// PrefixPieChart plots the share of each year prefix
func PrefixPieChart(counts []models.PrefixCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(baseOptions("Asset Tag Distribution by Year")...)

	data := make([]opts.PieData, len(counts))
	for i, c := range counts {
		data[i] = opts.PieData{Name: c.Prefix, Value: c.Count}
	}
	pie.AddSeries("Count", data)
	return pie
}

// AssetTagPieChart plots the value counts of asset_tag
func AssetTagPieChart(counts []models.ValueCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(baseOptions("Asset Distribution by Asset Tag")...)

	data := make([]opts.PieData, len(counts))
	for i, c := range counts {
		data[i] = opts.PieData{Name: c.Value, Value: c.Count}
	}
	pie.AddSeries("count", data)
	return pie
}

// DeviceScatterChart plots asset tag against machine use, one series per device type.
// Hovering a point shows its name, department and location.
func DeviceScatterChart(points []models.DevicePoint) *charts.Scatter {
	scatter := charts.NewScatter()

	var tags, uses []string
	seenTag := make(map[string]bool)
	seenUse := make(map[string]bool)
	series := make(map[models.DeviceType][]opts.ScatterData)
	for _, p := range points {
		if !seenTag[p.AssetTag] {
			seenTag[p.AssetTag] = true
			tags = append(tags, p.AssetTag)
		}
		if !seenUse[p.MachineUse] {
			seenUse[p.MachineUse] = true
			uses = append(uses, p.MachineUse)
		}
		series[p.DeviceType] = append(series[p.DeviceType], opts.ScatterData{
			Name:  fmt.Sprintf("%s | %s | %s", p.Name, p.Department, p.Location),
			Value: []string{p.AssetTag, p.MachineUse},
		})
	}
	sort.Strings(uses)

	scatter.SetGlobalOptions(append(baseOptions("Device Type vs Build Machine Use"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "asset_tag", Data: tags}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "u_build_machine_use", Data: uses}),
	)...)

	for _, dt := range []models.DeviceType{models.DeviceDesktop, models.DeviceLaptop} {
		if len(series[dt]) == 0 {
			continue
		}
		scatter.AddSeries(string(dt), series[dt],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deviceColors[dt]}))
	}
	return scatter
}

// DeviceBarChart plots grouped (device type, machine use) counts side by side.
// selected is nil for the unfiltered chart and empty for "no selection".
func DeviceBarChart(groups []models.DeviceCategoryCount, selected []string) *charts.Bar {
	title := "Device Type vs Build Type Count"
	switch {
	case selected != nil && len(selected) == 0:
		title += " (No selection)"
		groups = nil
	case selected != nil:
		title += " (Filtered)"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(title),
		charts.WithXAxisOpts(opts.XAxis{Name: "Build Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)...)

	var categories []string
	seen := make(map[string]bool)
	counts := make(map[models.DeviceType]map[string]int)
	for _, g := range groups {
		if !seen[g.Category] {
			seen[g.Category] = true
			categories = append(categories, g.Category)
		}
		if counts[g.DeviceType] == nil {
			counts[g.DeviceType] = make(map[string]int)
		}
		counts[g.DeviceType][g.Category] = g.Count
	}
	sort.Strings(categories)

	bar.SetXAxis(categories)
	for _, dt := range []models.DeviceType{models.DeviceDesktop, models.DeviceLaptop} {
		if counts[dt] == nil {
			continue
		}
		data := make([]opts.BarData, len(categories))
		for i, c := range categories {
			data[i] = opts.BarData{Value: counts[dt][c]}
		}
		bar.AddSeries(string(dt), data)
	}
	return bar
}

// VersionBarChart plots desktop and laptop counts per build version
func VersionBarChart(groups []models.VersionDeviceCount, noSelection bool) *charts.Bar {
	title := "Desktop vs Laptop Count by Version"
	if noSelection {
		title = "Please select machine use types"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(title),
		charts.WithXAxisOpts(opts.XAxis{Name: "Version"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Computers"}),
	)...)

	var versions []string
	seen := make(map[string]bool)
	counts := make(map[models.DeviceType]map[string]int)
	for _, g := range groups {
		if !seen[g.Version] {
			seen[g.Version] = true
			versions = append(versions, g.Version)
		}
		if counts[g.DeviceType] == nil {
			counts[g.DeviceType] = make(map[string]int)
		}
		counts[g.DeviceType][g.Version] = g.Count
	}
	sort.Strings(versions)

	bar.SetXAxis(versions)
	for _, dt := range []models.DeviceType{models.DeviceDesktop, models.DeviceLaptop} {
		if counts[dt] == nil {
			continue
		}
		data := make([]opts.BarData, len(versions))
		for i, v := range versions {
			data[i] = opts.BarData{Value: counts[dt][v]}
		}
		bar.AddSeries(string(dt), data, charts.WithItemStyleOpts(opts.ItemStyle{Color: deviceColors[dt]}))
	}
	return bar
}
