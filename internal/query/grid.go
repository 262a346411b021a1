package query

// Sort is one column of a multi-column grid sort.
type Sort struct {
	Field string `json:"field"`
	Dir   string `json:"dir"`
}

// Filter is either a leaf condition (Field, Operator, Value) or a group
// of nested filters joined by Logic.
type Filter struct {
	Field    string      `json:"field,omitempty"`
	Operator string      `json:"operator,omitempty"`
	Value    interface{} `json:"value,omitempty"`

	Logic   string   `json:"logic,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
}

// IsGroup reports whether f combines nested filters instead of testing a column.
func (f Filter) IsGroup() bool {
	return f.Logic != "" || len(f.Filters) > 0
}

// GridRequest is the paging, sorting and filtering state a data grid sends.
type GridRequest struct {
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
	Sorts       []Sort   `json:"sorts"`
	Filters     []Filter `json:"filters"`
	SearchQuery string   `json:"searchQuery"`
}
