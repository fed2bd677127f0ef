package models

// Dashboard variants, named after the routes they are served on
const (
	VariantTable = "tbl"
	VariantV1    = "v1"
	VariantV2    = "v2"
	VariantV3    = "v3"
	VariantV4    = "v4"
)

// Selection is the user input of one dashboard render.
// A nil slice means "not given, use the default"; an empty non-nil slice is an explicit empty selection.
type Selection struct {
	Columns     []string `json:"columns"`
	MachineUses []string `json:"machineUses"`
	Page        int      `json:"page"`
}

// ChartRef points the page at a chart rendered on its own route
type ChartRef struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DashboardView is everything a dashboard page displays for one selection
type DashboardView struct {
	Variant string `json:"variant"`
	Title   string `json:"title"`

	Summary *AssetSummary `json:"summary,omitempty"`
	Charts  []ChartRef    `json:"charts"`

	AvailableColumns []string `json:"availableColumns,omitempty"`

	ColumnSelector  bool     `json:"columnSelector"`
	ColumnOptions   []string `json:"columnOptions,omitempty"`
	SelectedColumns []string `json:"selectedColumns"`

	MachineUseSelector  bool     `json:"machineUseSelector"`
	MachineUseOptions   []string `json:"machineUseOptions,omitempty"`
	SelectedMachineUses []string `json:"selectedMachineUses,omitempty"`

	Table     Table `json:"table"`
	TotalRows int   `json:"totalRows"`
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	PageSize  int   `json:"pageSize"`
}

// IsSelected reports whether value is in the selected list
func IsSelected(selected []string, value string) bool {
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}
