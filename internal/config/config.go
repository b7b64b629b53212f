// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles the catalog tool configuration from viper
// state and validates it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// Defaults applied when the config file and environment leave a value
// unset.
const (
	DefaultInventoryDir = "inventory"
	DefaultMaxResults   = 20
	DefaultTopValues    = 10
)

var validate = validator.New()

// SetDefaults registers the documented defaults with viper. Unmarshal
// only sees keys viper knows about, so registering every key here is
// what lets CATALOG_* environment values bind without a config file.
func SetDefaults() {
	viper.SetDefault("sort.debug", false)
	viper.SetDefault("standardize.debug", false)
	viper.SetDefault("profile.top_values", DefaultTopValues)
	viper.SetDefault("inventory.dir", DefaultInventoryDir)
	viper.SetDefault("inventory.max_results", DefaultMaxResults)
	viper.SetDefault("inventory.export_format", string(types.ExportYAML))
}

// Load assembles the pipeline configuration from whatever viper has read
// (config file, environment), fills defaults, and validates the result.
func Load() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return types.PipelineConfig{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields with the documented defaults.
func ApplyDefaults(cfg *types.PipelineConfig) {
	if cfg.Inventory.Dir == "" {
		cfg.Inventory.Dir = DefaultInventoryDir
	}
	if cfg.Inventory.MaxResults == 0 {
		cfg.Inventory.MaxResults = DefaultMaxResults
	}
	if cfg.Inventory.ExportFormat == "" {
		cfg.Inventory.ExportFormat = types.ExportYAML
	}
	if cfg.Profile.TopValues == 0 {
		cfg.Profile.TopValues = DefaultTopValues
	}
}

// Validate checks cfg against its declared constraints.
func Validate(cfg *types.PipelineConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, len(validationErrs))
		for i, fe := range validationErrs {
			msgs[i] = translate(fe)
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("validating configuration: %w", err)
}

func translate(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "PipelineConfig.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return fe.Error()
}
