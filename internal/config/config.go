// Package config loads the ecotray YAML configuration: the LCA context,
// an optional grid region, an optional custom material catalog, the score
// policy and any extra scenarios.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rshade/ecotray/internal/domain/lca"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/rshade/ecotray/internal/scenario"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by the binaries.
const (
	// PathEnvVar names the config file when no -config flag is given.
	PathEnvVar = "ECOTRAY_CONFIG"

	// GridRegionEnvVar overrides grid_region.
	GridRegionEnvVar = "ECOTRAY_GRID_REGION"
)

// Config is the top-level configuration. Fields map 1:1 to the YAML keys.
type Config struct {
	// Context holds the LCA emission factors. Omitted factors keep the
	// Phoenix reference values.
	Context lca.Context `yaml:"context"`

	// GridRegion selects a grid factor from lca.GridRegions and
	// overrides context.grid_emission_factor_kg_per_kwh.
	GridRegion string `yaml:"grid_region"`

	// CatalogPath points at a custom material catalog. Relative paths are
	// resolved against the config file's directory. Empty means the
	// embedded reference catalog.
	CatalogPath string `yaml:"catalog_path"`

	Policy    lca.Policy          `yaml:"policy"`
	Scenarios []scenario.Scenario `yaml:"scenarios"`

	baseDir string
}

// Default returns the configuration used when no file is given, with
// environment overrides applied.
func Default() (*Config, error) {
	cfg := defaults()
	applyEnv(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults; unknown keys are
// rejected. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	cfg.baseDir = filepath.Dir(path)
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to PathEnvVar and then to
// Default when both are empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path == "" {
		return Default()
	}
	return Load(path)
}

// EffectiveContext returns Context with GridRegion applied.
func (c *Config) EffectiveContext() lca.Context {
	if c.GridRegion == "" {
		return c.Context
	}
	ctx, _ := c.Context.WithGridRegion(c.GridRegion)
	return ctx
}

// Catalog returns the embedded catalog or the one at CatalogPath.
func (c *Config) Catalog() (*materials.Catalog, error) {
	if c.CatalogPath == "" {
		return materials.Default()
	}

	path := c.CatalogPath
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open catalog: %w", err)
	}
	defer f.Close()

	return materials.LoadCatalog(f)
}

// Registry returns the built-in scenarios plus the configured ones.
func (c *Config) Registry() (*scenario.Registry, error) {
	return scenario.DefaultRegistry(c.Scenarios...)
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Context: lca.PhoenixContext(),
		Policy:  lca.DefaultPolicy(),
	}
}

func applyEnv(cfg *Config) {
	if region := os.Getenv(GridRegionEnvVar); region != "" {
		cfg.GridRegion = region
	}
}

// validate checks structural constraints. Scenario materials are resolved
// when the catalog is built, not here.
func validate(cfg *Config) error {
	if err := cfg.Context.Validate(); err != nil {
		return fmt.Errorf("context: %w", err)
	}
	if cfg.GridRegion != "" {
		if _, ok := lca.GridFactor(cfg.GridRegion); !ok {
			return fmt.Errorf("grid_region: unknown region %q", cfg.GridRegion)
		}
	}
	if err := cfg.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	seen := make(map[string]bool, len(cfg.Scenarios))
	for i, s := range cfg.Scenarios {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("scenarios[%d]: %w", i, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenarios[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
