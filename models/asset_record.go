package models

// Column names of the cmdb_ci_computer export
const (
	ColumnName                = "name"
	ColumnAssetTag            = "asset_tag"
	ColumnAsset               = "asset"
	ColumnAssignedTo          = "assigned_to"
	ColumnDepartment          = "department"
	ColumnLocation            = "location"
	ColumnBuildBusinessOwner  = "u_build_business_owner"
	ColumnBuildDeploymentType = "u_build_deployment_type"
	ColumnBuildPrimaryUser    = "u_build_primary_user"
	ColumnBuildMachineUse     = "u_build_machine_use"
	ColumnBuildSite           = "u_build_site"
	ColumnBuildUse            = "u_build_use"
	ColumnInstallStatus       = "install_status"
	ColumnHardwareSubstatus   = "hardware_substatus"
	ColumnPrimaryPC           = "u_primary_pc"
)

// MissingValue is the text a missing cell coerces to when it is matched as a string
const MissingValue = "nan"

// StandardColumns is the fixed column list offered by the column selectors
var StandardColumns = []string{
	ColumnName,
	ColumnAssetTag,
	ColumnAsset,
	ColumnAssignedTo,
	ColumnDepartment,
	ColumnLocation,
	ColumnBuildBusinessOwner,
	ColumnBuildDeploymentType,
	ColumnBuildPrimaryUser,
	ColumnBuildMachineUse,
	ColumnBuildSite,
	ColumnBuildUse,
	ColumnInstallStatus,
	ColumnHardwareSubstatus,
	ColumnPrimaryPC,
}

// AssetRecord represents one configuration item row.
// Missing cells are absent from Values; an empty string is a present value.
type AssetRecord struct {
	Values map[string]string `json:"values"`
}

// NewAssetRecord creates an AssetRecord from column values
func NewAssetRecord(values map[string]string) AssetRecord {
	if values == nil {
		values = make(map[string]string)
	}
	return AssetRecord{Values: values}
}

// Get returns the raw value of a column and whether it is present
func (r AssetRecord) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Text returns the string form of a column, MissingValue when the cell is missing
func (r AssetRecord) Text(column string) string {
	if v, ok := r.Values[column]; ok {
		return v
	}
	return MissingValue
}

// AssetTag returns the string-coerced asset tag
func (r AssetRecord) AssetTag() string {
	return r.Text(ColumnAssetTag)
}

// Name returns the string-coerced name
func (r AssetRecord) Name() string {
	return r.Text(ColumnName)
}

// BuildMachineUse returns the machine use and whether it is present
func (r AssetRecord) BuildMachineUse() (string, bool) {
	return r.Get(ColumnBuildMachineUse)
}

// AssetTable is a loaded dataset with its header order
type AssetTable struct {
	Columns []string      `json:"columns"`
	Records []AssetRecord `json:"records"`
}

// Len returns the number of records
func (t *AssetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the header contains column
func (t *AssetTable) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}
