/*
Copyright 2025 Planfeed Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config provides configuration management for the planfeed pipeline.
//
// The pipeline requires configuration for:
//   - input files (price-list CSV, demand traces)
//   - the catalog topology (regions, instance types, quota limits)
//   - quantization and performance parameters
//
// Configuration can be loaded from YAML files or environment variables.
// Uses Viper for robust configuration management with automatic env binding.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the complete pipeline configuration.
type Config struct {
	// PricingFile is the path to the bulk price-list CSV dump.
	PricingFile string `yaml:"pricingFile"`

	// DemandFile is the path to the demand trace file, one comma-separated
	// trace per line. Optional; without it only the catalog and performance
	// stages run.
	DemandFile string `yaml:"demandFile,omitempty"`

	// Regions is the list of provider location names to build the catalog
	// for. If empty, regions are discovered from the price table, minus the
	// non-plannable ones.
	Regions []string `yaml:"regions,omitempty"`

	// InstanceTypes is the list of machine types to include in the catalog.
	// If empty, defaults to DefaultInstanceTypes.
	InstanceTypes []string `yaml:"instanceTypes,omitempty"`

	// OperatingSystem is the OS substring offers must match.
	// Default: Linux
	OperatingSystem string `yaml:"operatingSystem,omitempty"`

	// Catalog contains the quota topology of the generated catalog.
	Catalog CatalogConfig `yaml:"catalog,omitempty"`

	// Quantization contains the demand discretization settings.
	Quantization QuantizationConfig `yaml:"quantization,omitempty"`

	// Performance contains the throughput model settings.
	Performance PerformanceConfig `yaml:"performance,omitempty"`

	// PrivateCloud contains the optional on-premises machine pool.
	PrivateCloud PrivateCloudConfig `yaml:"privateCloud,omitempty"`

	// LogLevel controls the verbosity of logs.
	// Valid values: debug, info, warn, error
	// Default: info
	LogLevel string `yaml:"logLevel,omitempty"`

	// MetricsBindAddress is the address the metrics endpoint binds to.
	// Default: :8080
	MetricsBindAddress string `yaml:"metricsBindAddress,omitempty"`
}

// CatalogConfig contains the quota topology applied when generating the
// instance catalog.
type CatalogConfig struct {
	// MaxOnDemandPerType caps how many on-demand units of one type may run
	// in one region. Default: 20
	MaxOnDemandPerType int64 `yaml:"maxOnDemandPerType,omitempty"`

	// MaxOnDemandPerRegion caps on-demand units across all types in one
	// region, via a constraint shared by every on-demand entry of the
	// region. Default: 20
	MaxOnDemandPerRegion int64 `yaml:"maxOnDemandPerRegion,omitempty"`

	// MaxReservedPerZone caps reserved units across all types in one
	// availability zone. Default: 20
	MaxReservedPerZone int64 `yaml:"maxReservedPerZone,omitempty"`

	// AvailabilityZones is how many zones each region is modeled with.
	// Default: 3
	AvailabilityZones int `yaml:"availabilityZones,omitempty"`
}

// QuantizationConfig contains the demand discretization settings.
type QuantizationConfig struct {
	// Factor scales the GCD-derived quantum. 0 disables quantization and
	// passes demand through unchanged. Default: 0
	Factor int64 `yaml:"factor,omitempty"`

	// HorizonHours truncates demand traces to this many leading values.
	// 0 keeps traces at full length. Default: 8760 (one year of hours)
	HorizonHours int `yaml:"horizonHours,omitempty"`
}

// PerformanceConfig contains the throughput model settings.
type PerformanceConfig struct {
	// Baselines is the per-application throughput per compute unit. One
	// value per application; applications beyond the list cycle through it.
	// Default: [1000, 500, 2000, 300]
	Baselines []int64 `yaml:"baselines,omitempty"`

	// Factor is a global multiplier applied to every performance value.
	// Default: 1
	Factor int64 `yaml:"factor,omitempty"`

	// DefaultComputeUnits is used for machine types absent from the price
	// table, such as private-cloud hosts. Default: 1
	DefaultComputeUnits int64 `yaml:"defaultComputeUnits,omitempty"`

	// Applications is how many applications to plan for. Demand traces and
	// baselines cycle to cover them. Default: number of baselines
	Applications int `yaml:"applications,omitempty"`

	// FirstApplication rotates the baseline and demand-trace lists so the
	// entry at this index is assigned to the first application, wrapping
	// the earlier entries to the end. Default: 0
	FirstApplication int `yaml:"firstApplication,omitempty"`
}

// PrivateCloudConfig describes optional pools of on-premises machines added
// to the catalog outside any provider quota: machines that could still be
// bought (at their real hourly cost) and machines already paid for (at a
// token cost, so the solver prefers filling them first without treating them
// as free).
type PrivateCloudConfig struct {
	// Hosts is how many new private machines may be acquired. 0 disables
	// the pool.
	Hosts int64 `yaml:"hosts,omitempty"`

	// PricePerHour is the accounting price of one new private machine hour.
	// Zero is rejected because the solver would treat free capacity as
	// infinitely preferable.
	PricePerHour float64 `yaml:"pricePerHour,omitempty"`

	// PreviousHosts is how many private machines are already owned. 0
	// disables the pool.
	PreviousHosts int64 `yaml:"previousHosts,omitempty"`

	// PreviousPricePerHour is the token price of one already-owned machine
	// hour, small but positive.
	PreviousPricePerHour float64 `yaml:"previousPricePerHour,omitempty"`
}

// Load loads configuration from a YAML file and validates it.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (PLANFEED_* prefix)
//  2. Configuration file values
//  3. Default values
//
// Environment variables can override scalar configuration values by
// converting the field name to uppercase with PLANFEED_ prefix. For example:
//   - PLANFEED_PRICING_FILE overrides pricingFile
//   - PLANFEED_LOG_LEVEL overrides logLevel
//   - PLANFEED_METRICS_BIND_ADDRESS overrides metricsBindAddress
//
// List-valued fields like regions are not overridable via env vars.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	v.SetDefault("operatingSystem", DefaultOperatingSystem)
	v.SetDefault("instanceTypes", DefaultInstanceTypes)
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsBindAddress", ":8080")
	v.SetDefault("catalog.maxOnDemandPerType", DefaultMaxOnDemandPerType)
	v.SetDefault("catalog.maxOnDemandPerRegion", DefaultMaxOnDemandPerRegion)
	v.SetDefault("catalog.maxReservedPerZone", DefaultMaxReservedPerZone)
	v.SetDefault("catalog.availabilityZones", DefaultAvailabilityZones)
	v.SetDefault("quantization.factor", 0)
	v.SetDefault("quantization.horizonHours", DefaultHorizonHours)
	v.SetDefault("performance.baselines", DefaultBaselines)
	v.SetDefault("performance.factor", 1)
	v.SetDefault("performance.defaultComputeUnits", 1)
	v.SetDefault("performance.firstApplication", 0)

	// Viper's automatic mapping doesn't handle camelCase to
	// SCREAMING_SNAKE_CASE well, so bind each key explicitly.
	v.SetEnvPrefix("PLANFEED")
	_ = v.BindEnv("pricingFile", "PLANFEED_PRICING_FILE")
	_ = v.BindEnv("demandFile", "PLANFEED_DEMAND_FILE")
	_ = v.BindEnv("operatingSystem", "PLANFEED_OPERATING_SYSTEM")
	_ = v.BindEnv("logLevel", "PLANFEED_LOG_LEVEL")
	_ = v.BindEnv("metricsBindAddress", "PLANFEED_METRICS_BIND_ADDRESS")
	_ = v.BindEnv("quantization.factor", "PLANFEED_QUANTIZATION_FACTOR")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.PricingFile == "" {
		return fmt.Errorf("pricingFile is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("invalid catalog config: %w", err)
	}
	if c.Quantization.Factor < 0 {
		return fmt.Errorf("quantization factor must be >= 0, got %d", c.Quantization.Factor)
	}
	if c.Quantization.HorizonHours < 0 {
		return fmt.Errorf("quantization horizon must be >= 0, got %d", c.Quantization.HorizonHours)
	}
	if err := c.Performance.Validate(); err != nil {
		return fmt.Errorf("invalid performance config: %w", err)
	}
	if err := c.PrivateCloud.Validate(); err != nil {
		return fmt.Errorf("invalid private cloud config: %w", err)
	}

	return nil
}

// Validate checks the catalog quota topology.
func (c *CatalogConfig) Validate() error {
	if c.MaxOnDemandPerType < 0 {
		return fmt.Errorf("maxOnDemandPerType must be >= 0, got %d", c.MaxOnDemandPerType)
	}
	if c.MaxOnDemandPerRegion < 0 {
		return fmt.Errorf("maxOnDemandPerRegion must be >= 0, got %d", c.MaxOnDemandPerRegion)
	}
	if c.MaxReservedPerZone < 0 {
		return fmt.Errorf("maxReservedPerZone must be >= 0, got %d", c.MaxReservedPerZone)
	}
	if c.AvailabilityZones < 1 {
		return fmt.Errorf("availabilityZones must be >= 1, got %d", c.AvailabilityZones)
	}
	return nil
}

// Validate checks the throughput model settings.
func (p *PerformanceConfig) Validate() error {
	for i, b := range p.Baselines {
		if b <= 0 {
			return fmt.Errorf("baseline at index %d must be positive, got %d", i, b)
		}
	}
	if p.Factor < 1 {
		return fmt.Errorf("performance factor must be >= 1, got %d", p.Factor)
	}
	if p.DefaultComputeUnits < 1 {
		return fmt.Errorf("defaultComputeUnits must be >= 1, got %d", p.DefaultComputeUnits)
	}
	if p.Applications < 0 {
		return fmt.Errorf("applications must be >= 0, got %d", p.Applications)
	}
	if p.Applications > 0 && len(p.Baselines) == 0 {
		return fmt.Errorf("baselines must not be empty when applications is set")
	}
	if p.FirstApplication < 0 {
		return fmt.Errorf("firstApplication must be >= 0, got %d", p.FirstApplication)
	}
	return nil
}

// Validate checks the private cloud pool settings.
func (p *PrivateCloudConfig) Validate() error {
	if p.Hosts < 0 {
		return fmt.Errorf("hosts must be >= 0, got %d", p.Hosts)
	}
	if p.Hosts > 0 && p.PricePerHour <= 0 {
		return fmt.Errorf("pricePerHour must be positive when hosts are configured, got %g", p.PricePerHour)
	}
	if p.PreviousHosts < 0 {
		return fmt.Errorf("previousHosts must be >= 0, got %d", p.PreviousHosts)
	}
	if p.PreviousHosts > 0 && p.PreviousPricePerHour <= 0 {
		return fmt.Errorf("previousPricePerHour must be positive when previousHosts are configured, got %g", p.PreviousPricePerHour)
	}
	return nil
}

// ApplicationCount returns how many applications to plan for: the configured
// count, or one per baseline when unset.
func (c *Config) ApplicationCount() int {
	if c.Performance.Applications > 0 {
		return c.Performance.Applications
	}
	return len(c.Performance.Baselines)
}
