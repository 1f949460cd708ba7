package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// suite is one sweep: an algorithm evaluated against a trace file
// across a list of capacities.
type suite struct {
	Algorithm  string `yaml:"algorithm"`
	File       string `yaml:"file"`
	Capacities []int  `yaml:"capacities"`
}

// sweepConfig is the top-level shape of the YAML config file.
type sweepConfig struct {
	Tests []suite `yaml:"tests"`
}

// loadConfig reads and validates a sweep config file. Each suite's
// capacities are sorted ascending if they weren't already.
func loadConfig(path string) (*sweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg sweepConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}
	if len(cfg.Tests) == 0 {
		return nil, fmt.Errorf("config: no 'tests' defined in %q", path)
	}

	for i := range cfg.Tests {
		t := &cfg.Tests[i]
		if t.File == "" || len(t.Capacities) == 0 {
			return nil, fmt.Errorf("config: test %d is missing file or capacities", i)
		}
		if t.Algorithm == "" {
			t.Algorithm = "s3fifo"
		}
		if !sort.IntsAreSorted(t.Capacities) {
			sorted := append([]int(nil), t.Capacities...)
			sort.Ints(sorted)
			t.Capacities = sorted
		}
	}

	return &cfg, nil
}
