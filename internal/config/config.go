// Package config loads and validates the YAML configuration a
// numagraph binary runs with (SPEC_FULL.md §2): the partitioner's
// NUMA/partition-count and strategy choices, the COO sort policy, VEBO
// relabeling, and edge_map's threshold overrides. Built the way the
// rest of the corpus configures long-running tools — gopkg.in/yaml.v3
// plus go-playground/validator/v10 struct tags — rather than hand-rolled
// parsing, since the teacher repo already establishes that idiom for
// its own deployment-adjacent config (cmd/graphdb-upgrade's
// ClusterConfig, pkg/validation's struct-tag validation).
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/numagraph/internal/engineerr"
)

// Config is the full set of engine tuning knobs a run reads from its
// YAML file, with CLI flags (stdlib flag, as the teacher's
// cmd/benchmark-* binaries do) permitted to override individual fields
// after loading.
type Config struct {
	NumNUMANodes      int    `yaml:"num_numa_nodes" validate:"required,min=1"`
	NumPartitions     int    `yaml:"num_partitions" validate:"required,min=1"`
	PartitionStrategy string `yaml:"partition_strategy" validate:"required,oneof=dest source"`
	EdgeSort          string `yaml:"edge_sort" validate:"omitempty,oneof=csr hilbert"`
	VEBO              bool   `yaml:"vebo"`
	SparseThreshold   int    `yaml:"sparse_threshold" validate:"gte=0"`
	PART96            bool   `yaml:"part96"`
}

// Default returns the spec-mandated defaults: by-destination
// partitioning, CSR secondary sort, VEBO off, T1 computed from the
// frontier (SparseThreshold=0 selects m/20 at call time, spec.md §4.5).
func Default() *Config {
	return &Config{
		NumNUMANodes:      1,
		NumPartitions:     1,
		PartitionStrategy: "dest",
		EdgeSort:          "csr",
		VEBO:              false,
		SparseThreshold:   0,
		PART96:            false,
	}
}

var validate = validator.New()

// Load reads and validates a YAML config file at path, starting from
// Default() so a partial file only needs to name the fields it
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, engineerr.NewError("config.Load").Context(path).Cause(err).Err()
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, engineerr.NewError("config.Load").Context(path).Cause(err).Err()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs the struct-tag validation and returns a formatted
// EngineError on the first violation, matching the teacher's
// pkg/validation error-formatting style.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return engineerr.NewError("config.Validate").Cause(err).Err()
		}
		first := validationErrs[0]
		msg := fmt.Sprintf("%s: validation failed (%s)", first.Field(), first.Tag())
		return engineerr.NewError("config.Validate").Context(msg).Cause(engineerr.ErrArgument).Err()
	}
	return nil
}
