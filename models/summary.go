package models

// DeviceType is the Desktop/Laptop label derived from a machine name
type DeviceType string

const (
	DeviceDesktop DeviceType = "Desktop"
	DeviceLaptop  DeviceType = "Laptop"
)

// PrefixCount is the number of asset tags starting with a year-code prefix
type PrefixCount struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

// ValueCount is the number of records sharing one column value
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DeviceCategoryCount counts records per (device type, category) pair
type DeviceCategoryCount struct {
	DeviceType DeviceType `json:"deviceType"`
	Category   string     `json:"category"`
	Count      int        `json:"count"`
}

// VersionDeviceCount counts records per (build version, device type) pair
type VersionDeviceCount struct {
	Version    string     `json:"version"`
	DeviceType DeviceType `json:"deviceType"`
	Count      int        `json:"count"`
}

// DevicePoint is one record plotted on the device type scatter chart
type DevicePoint struct {
	AssetTag   string     `json:"assetTag"`
	MachineUse string     `json:"machineUse"`
	DeviceType DeviceType `json:"deviceType"`
	Name       string     `json:"name"`
	Department string     `json:"department"`
	Location   string     `json:"location"`
}

// AssetSummary is the prefix-count summary of a dataset
type AssetSummary struct {
	TotalRecords int           `json:"totalRecords"`
	PrefixCounts []PrefixCount `json:"prefixCounts"`
	Matched      int           `json:"matched"`
	Unmatched    int           `json:"unmatched"`
}
