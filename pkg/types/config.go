package types

// SortConfig holds settings for the sort tool.
type SortConfig struct {
	// Debug prints an Original -> Cleaned trace for every record written.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// StandardizeConfig holds settings for the standardize tool.
type StandardizeConfig struct {
	// Debug prints an Original -> Standardized trace for every record written.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// ProfileConfig holds settings for the profile tool.
type ProfileConfig struct {
	// TopValues caps each value-count table in the report (default 10).
	TopValues int `json:"top_values" yaml:"top_values" mapstructure:"top_values" validate:"gte=0"`
}

// ExportFormat selects the inventory export format.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// InventoryConfig holds settings for the inventory store.
type InventoryConfig struct {
	// Dir is the base directory for the inventory (contains index/).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir" validate:"required"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=0"`

	// ExportFormat selects the default export format: yaml or json.
	ExportFormat ExportFormat `json:"export_format" yaml:"export_format" mapstructure:"export_format" validate:"omitempty,oneof=yaml json"`
}

// PipelineConfig groups all tool configurations.
type PipelineConfig struct {
	Sort        SortConfig        `json:"sort" yaml:"sort" mapstructure:"sort"`
	Standardize StandardizeConfig `json:"standardize" yaml:"standardize" mapstructure:"standardize"`
	Profile     ProfileConfig     `json:"profile" yaml:"profile" mapstructure:"profile"`
	Inventory   InventoryConfig   `json:"inventory" yaml:"inventory" mapstructure:"inventory"`
}
