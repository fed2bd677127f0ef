package summary

import (
	"regexp"
	"sort"
	"strings"

	"ci-computer-dashboard/models"
)

// desktopPrefixes are the naming conventions of desktop machines
var desktopPrefixes = []string{"com8cc", "terwd", "8cc"}

var versionPattern = regexp.MustCompile(`\d{2}H`)

// ClassifyDevice labels a machine name as Desktop or Laptop
func ClassifyDevice(name string) models.DeviceType {
	for _, p := range desktopPrefixes {
		if strings.HasPrefix(name, p) {
			return models.DeviceDesktop
		}
	}
	return models.DeviceLaptop
}

// ClassifyRecord labels a record by its string-coerced name.
// A missing name coerces to "nan" and is therefore a Laptop.
func ClassifyRecord(r models.AssetRecord) models.DeviceType {
	return ClassifyDevice(r.Name())
}

// CountDeviceTypes counts records per device label
func CountDeviceTypes(records []models.AssetRecord) map[models.DeviceType]int {
	counts := map[models.DeviceType]int{
		models.DeviceDesktop: 0,
		models.DeviceLaptop:  0,
	}
	for _, r := range records {
		counts[ClassifyRecord(r)]++
	}
	return counts
}

type deviceCategoryKey struct {
	device   models.DeviceType
	category string
}

// GroupByDeviceType counts records per (device type, column value).
// Records whose column is missing do not form a group.
func GroupByDeviceType(records []models.AssetRecord, column string) []models.DeviceCategoryCount {
	groups := make(map[deviceCategoryKey]int)
	for _, r := range records {
		category, ok := r.Get(column)
		if !ok {
			continue
		}
		groups[deviceCategoryKey{device: ClassifyRecord(r), category: category}]++
	}

	out := make([]models.DeviceCategoryCount, 0, len(groups))
	for k, n := range groups {
		out = append(out, models.DeviceCategoryCount{DeviceType: k.device, Category: k.category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DeviceType != out[j].DeviceType {
			return out[i].DeviceType < out[j].DeviceType
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// FilterCategories keeps the groups whose category is selected
func FilterCategories(groups []models.DeviceCategoryCount, selected []string) []models.DeviceCategoryCount {
	want := toSet(selected)
	out := make([]models.DeviceCategoryCount, 0, len(groups))
	for _, g := range groups {
		if want[g.Category] {
			out = append(out, g)
		}
	}
	return out
}

// ExtractVersion returns the first two-digit year build code (e.g. "22H") in s
func ExtractVersion(s string) (string, bool) {
	v := versionPattern.FindString(s)
	return v, v != ""
}

type versionDeviceKey struct {
	version string
	device  models.DeviceType
}

// GroupByVersion counts records whose machine use is selected per (build version, device type).
// The version is read from u_build_use; records without one are dropped.
func GroupByVersion(records []models.AssetRecord, machineUses []string) []models.VersionDeviceCount {
	want := toSet(machineUses)
	groups := make(map[versionDeviceKey]int)
	for _, r := range records {
		use, ok := r.BuildMachineUse()
		if !ok || !want[use] {
			continue
		}
		buildUse, ok := r.Get(models.ColumnBuildUse)
		if !ok {
			continue
		}
		version, ok := ExtractVersion(buildUse)
		if !ok {
			continue
		}
		groups[versionDeviceKey{version: version, device: ClassifyRecord(r)}]++
	}

	out := make([]models.VersionDeviceCount, 0, len(groups))
	for k, n := range groups {
		out = append(out, models.VersionDeviceCount{Version: k.version, DeviceType: k.device, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Version != out[j].Version {
			return out[i].Version < out[j].Version
		}
		return out[i].DeviceType < out[j].DeviceType
	})
	return out
}

// DevicePoints projects every record onto the device type scatter chart
func DevicePoints(records []models.AssetRecord) []models.DevicePoint {
	points := make([]models.DevicePoint, len(records))
	for i, r := range records {
		points[i] = models.DevicePoint{
			AssetTag:   r.AssetTag(),
			MachineUse: r.Text(models.ColumnBuildMachineUse),
			DeviceType: ClassifyRecord(r),
			Name:       r.Name(),
			Department: r.Text(models.ColumnDepartment),
			Location:   r.Text(models.ColumnLocation),
		}
	}
	return points
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
