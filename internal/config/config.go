package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/modelboard/internal/timeutil"
)

// DefaultConfigPath is where modelboard looks for its config when no -config
// flag is given. A missing file there is not an error.
const DefaultConfigPath = "config/modelboard.json"

// Config is the root dashboard configuration. Every field is optional; the
// Get* methods supply defaults for fields left out of the JSON.
type Config struct {
	// Server
	Listen      *string `json:"listen,omitempty"`
	DebugRoutes *bool   `json:"debug_routes,omitempty"`
	AssetsHost  *string `json:"assets_host,omitempty"` // echarts javascript mirror

	// Live feeds
	LiveInterval     *string `json:"live_interval,omitempty"` // duration string like "1s"
	RealTimeCapacity *int    `json:"realtime_capacity,omitempty"`
	MonitorCapacity  *int    `json:"monitor_capacity,omitempty"`

	// Mock data
	Seed   *int64 `json:"seed,omitempty"`
	Epochs *int   `json:"epochs,omitempty"`

	// Chart sizes
	BarHeight      *int `json:"bar_height,omitempty"`
	LineHeight     *int `json:"line_height,omitempty"`
	DonutSize      *int `json:"donut_size,omitempty"`
	RealTimeHeight *int `json:"realtime_height,omitempty"`

	// Sample store; empty disables recording
	StorePath *string `json:"store_path,omitempty"`
	StoreKeep *int    `json:"store_keep,omitempty"` // samples kept per series at startup

	// Display zone for live time labels, e.g. "Europe/Berlin"
	Timezone *string `json:"timezone,omitempty"`
}

func ptrString(v string) *string { return &v }
func ptrBool(v bool) *bool       { return &v }
func ptrInt(v int) *int          { return &v }
func ptrInt64(v int64) *int64    { return &v }

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// Defaults returns a Config with every field set to its default value.
func Defaults() *Config {
	c := Empty()
	return &Config{
		Listen:           ptrString(c.GetListen()),
		DebugRoutes:      ptrBool(c.GetDebugRoutes()),
		AssetsHost:       ptrString(c.GetAssetsHost()),
		LiveInterval:     ptrString(c.GetLiveInterval().String()),
		RealTimeCapacity: ptrInt(c.GetRealTimeCapacity()),
		MonitorCapacity:  ptrInt(c.GetMonitorCapacity()),
		Seed:             ptrInt64(c.GetSeed()),
		Epochs:           ptrInt(c.GetEpochs()),
		BarHeight:        ptrInt(c.GetBarHeight()),
		LineHeight:       ptrInt(c.GetLineHeight()),
		DonutSize:        ptrInt(c.GetDonutSize()),
		RealTimeHeight:   ptrInt(c.GetRealTimeHeight()),
		StorePath:        ptrString(c.GetStorePath()),
		StoreKeep:        ptrInt(c.GetStoreKeep()),
		Timezone:         ptrString(c.GetTimezone()),
	}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension and be under 1MB. Fields omitted from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOptional loads path, returning an empty Config when path is the
// default location and no file exists there.
func LoadOptional(path string) (*Config, error) {
	if path == DefaultConfigPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Empty(), nil
		}
	}
	return Load(path)
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.LiveInterval != nil && *c.LiveInterval != "" {
		d, err := time.ParseDuration(*c.LiveInterval)
		if err != nil {
			return fmt.Errorf("invalid live_interval '%s': %w", *c.LiveInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("live_interval must be positive, got %s", d)
		}
	}

	if c.Timezone != nil && *c.Timezone != "" && !timeutil.IsTimezoneValid(*c.Timezone) {
		return fmt.Errorf("invalid timezone '%s'", *c.Timezone)
	}

	positive := []struct {
		name string
		v    *int
	}{
		{"realtime_capacity", c.RealTimeCapacity},
		{"monitor_capacity", c.MonitorCapacity},
		{"epochs", c.Epochs},
		{"bar_height", c.BarHeight},
		{"line_height", c.LineHeight},
		{"donut_size", c.DonutSize},
		{"realtime_height", c.RealTimeHeight},
		{"store_keep", c.StoreKeep},
	}
	for _, p := range positive {
		if p.v != nil && *p.v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", p.name, *p.v)
		}
	}
	return nil
}

// GetListen returns the HTTP listen address or the default.
func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8080"
	}
	return *c.Listen
}

// GetDebugRoutes reports whether /debug routes are mounted.
func (c *Config) GetDebugRoutes() bool {
	if c.DebugRoutes == nil {
		return false
	}
	return *c.DebugRoutes
}

// GetAssetsHost returns the echarts assets host, or "" for the public one.
func (c *Config) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return ""
	}
	return *c.AssetsHost
}

// GetLiveInterval parses and returns the LiveInterval as a time.Duration.
func (c *Config) GetLiveInterval() time.Duration {
	if c.LiveInterval == nil || *c.LiveInterval == "" {
		return time.Second // default
	}
	d, err := time.ParseDuration(*c.LiveInterval)
	if err != nil || d <= 0 {
		return time.Second // default on parse error
	}
	return d
}

// GetRealTimeCapacity returns the sample window of real-time charts.
func (c *Config) GetRealTimeCapacity() int {
	if c.RealTimeCapacity == nil {
		return 20
	}
	return *c.RealTimeCapacity
}

// GetMonitorCapacity returns the sample window of live monitors.
func (c *Config) GetMonitorCapacity() int {
	if c.MonitorCapacity == nil {
		return 30
	}
	return *c.MonitorCapacity
}

// GetSeed returns the seed for mock data and live sources.
func (c *Config) GetSeed() int64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}

// GetEpochs returns the length of the mock training run.
func (c *Config) GetEpochs() int {
	if c.Epochs == nil {
		return 50
	}
	return *c.Epochs
}

// GetBarHeight returns the bar chart plot height.
func (c *Config) GetBarHeight() int {
	if c.BarHeight == nil {
		return 200
	}
	return *c.BarHeight
}

// GetLineHeight returns the line chart height.
func (c *Config) GetLineHeight() int {
	if c.LineHeight == nil {
		return 200
	}
	return *c.LineHeight
}

// GetDonutSize returns the donut chart diameter area.
func (c *Config) GetDonutSize() int {
	if c.DonutSize == nil {
		return 200
	}
	return *c.DonutSize
}

// GetRealTimeHeight returns the real-time chart height.
func (c *Config) GetRealTimeHeight() int {
	if c.RealTimeHeight == nil {
		return 150
	}
	return *c.RealTimeHeight
}

// GetStorePath returns the SQLite sample store path; "" disables it.
func (c *Config) GetStorePath() string {
	if c.StorePath == nil {
		return ""
	}
	return *c.StorePath
}

// GetStoreKeep returns how many samples per series survive the startup prune.
func (c *Config) GetStoreKeep() int {
	if c.StoreKeep == nil {
		return 10000
	}
	return *c.StoreKeep
}

// GetTimezone returns the display zone name, UTC by default.
func (c *Config) GetTimezone() string {
	if c.Timezone == nil || *c.Timezone == "" {
		return "UTC"
	}
	return *c.Timezone
}
