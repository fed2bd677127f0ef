package models

// ConnectionReport is the outcome of one database connectivity check.
// Params never carries the password.
type ConnectionReport struct {
	Target    string            `json:"target"`
	Connected bool              `json:"connected"`
	Version   string            `json:"version,omitempty"`
	Params    map[string]string `json:"params"`
	Query     string            `json:"query,omitempty"`
	Result    *Table            `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}
