// Package config loads the tunables that shape how a collection is built
// and queried: WAND metadata layout, the reference-score table size used
// by the compressed codec, the default result-set size, and build
// parallelism.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kittclouds/ixcore/pkg/wanddata"
)

// Config is the full set of build- and query-time tunables.
type Config struct {
	// ReferenceSize is the number of buckets in the compressed WAND
	// codec's shared reference-score table.
	ReferenceSize int `yaml:"reference_size"`

	// ThresholdWandList is the minimum posting-list length a term needs
	// before it gets WAND metadata at all; shorter lists are treated as
	// always non-prunable.
	ThresholdWandList int `yaml:"threshold_wand_list"`

	// K is the default top-k result-set size.
	K int `yaml:"k"`

	// BlockSize selects fixed or variable WAND block sizing.
	BlockSize BlockSizeConfig `yaml:"block_size"`

	// Threads is the number of shard-building goroutines to use. 0 means
	// let the builder choose.
	Threads int `yaml:"threads"`
}

// BlockSizeConfig is the YAML-facing form of wanddata.BlockSizeVariant: a
// discriminated union can't round-trip through yaml.v3's struct tags
// directly, so this carries both fields and Variant() picks one.
type BlockSizeConfig struct {
	Fixed  *uint32  `yaml:"fixed,omitempty"`
	Lambda *float32 `yaml:"lambda,omitempty"`
}

// Variant converts to the form pkg/wanddata consumes.
func (b BlockSizeConfig) Variant() wanddata.BlockSizeVariant {
	if b.Lambda != nil {
		return wanddata.VariableBlockSize(*b.Lambda)
	}
	size := DefaultBlockSize
	if b.Fixed != nil {
		size = *b.Fixed
	}
	return wanddata.FixedBlockSize(size)
}

// Defaults for fields a caller leaves zero.
const (
	DefaultReferenceSize     = 256
	DefaultThresholdWandList = 64
	DefaultK                 = 10
	DefaultBlockSize         = 128
)

// Default returns this module's baseline configuration.
func Default() Config {
	size := uint32(DefaultBlockSize)
	return Config{
		ReferenceSize:     DefaultReferenceSize,
		ThresholdWandList: DefaultThresholdWandList,
		K:                 DefaultK,
		BlockSize:         BlockSizeConfig{Fixed: &size},
		Threads:           0,
	}
}

// Load parses YAML bytes into a Config, filling in defaults for any field
// left zero. A block_size that sets lambda drops the default fixed size.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.ReferenceSize <= 0 {
		c.ReferenceSize = DefaultReferenceSize
	}
	if c.ThresholdWandList < 0 {
		return fmt.Errorf("config: threshold_wand_list must be >= 0, got %d", c.ThresholdWandList)
	}
	if c.K <= 0 {
		c.K = DefaultK
	}
	if c.BlockSize.Lambda != nil {
		c.BlockSize.Fixed = nil
	}
	if c.BlockSize.Fixed == nil && c.BlockSize.Lambda == nil {
		size := uint32(DefaultBlockSize)
		c.BlockSize.Fixed = &size
	}
	if c.Threads < 0 {
		return fmt.Errorf("config: threads must be >= 0, got %d", c.Threads)
	}
	return nil
}
