package geometry

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Configuration keys, shared by the JSON file and the environment.
const (
	ParamCacheSize = "CACHE_SIZE"
	ParamBlockSize = "CACHE_BLOCK_SIZE"
	ParamWayNum    = "CACHE_WAY_NUM"
)

// Config holds the raw cache parameters before resolution.
type Config struct {
	// TotalSize is the cache capacity in bytes.
	TotalSize uint64 `json:"cache_size"`

	// BlockSize is the cache line size in bytes.
	BlockSize uint64 `json:"cache_block_size"`

	// WayCount is the associativity.
	WayCount uint64 `json:"cache_way_num"`
}

// DefaultConfig returns a 4KB, 2-way cache with 32B lines.
func DefaultConfig() Config {
	return Config{
		TotalSize: 4 * 1024,
		BlockSize: 8 * 4,
		WayCount:  2,
	}
}

// Resolve turns the configuration into a Geometry.
func (c Config) Resolve() (Geometry, error) {
	return Resolve(c.TotalSize, c.BlockSize, c.WayCount)
}

// Validate checks that the configuration resolves.
func (c Config) Validate() error {
	_, err := c.Resolve()
	return err
}

// LoadConfig loads a Config from a JSON file. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

// LookupFunc finds a configuration variable by name. os.LookupEnv has this
// shape.
type LookupFunc func(key string) (string, bool)

// ConfigFromEnv overrides base with any of CACHE_SIZE, CACHE_BLOCK_SIZE and
// CACHE_WAY_NUM that lookup finds. Values may be decimal, or carry a 0x, 0o or
// 0b prefix.
func ConfigFromEnv(base Config, lookup LookupFunc) (Config, error) {
	fields := []struct {
		key string
		dst *uint64
	}{
		{ParamCacheSize, &base.TotalSize},
		{ParamBlockSize, &base.BlockSize},
		{ParamWayNum, &base.WayCount},
	}

	for _, f := range fields {
		raw, ok := lookup(f.key)
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.ParseUint(raw, 0, 64)
		if err != nil {
			return Config{}, &ConfigurationError{
				Param:  f.key,
				Raw:    raw,
				Reason: "not an integer",
			}
		}
		*f.dst = v
	}

	return base, nil
}
