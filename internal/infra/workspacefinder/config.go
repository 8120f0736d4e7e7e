package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

// LoadConfig loads adventures.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "adventures.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Adventures.Masking.Enabled != nil {
		cfg.Masking.Enabled = *y.Adventures.Masking.Enabled
	}
	if y.Adventures.Defaults.Profile != "" {
		cfg.Defaults.Profile = y.Adventures.Defaults.Profile
	}
	if y.Adventures.Defaults.Model != "" {
		cfg.Defaults.Model = y.Adventures.Defaults.Model
	}
	if y.Adventures.Defaults.City != "" {
		cfg.Defaults.City = y.Adventures.Defaults.City
	}
	if y.Adventures.Paths.GuideDir != "" {
		cfg.Paths.GuideDir = y.Adventures.Paths.GuideDir
	}
	if y.Adventures.Paths.AgentsDir != "" {
		cfg.Paths.AgentsDir = y.Adventures.Paths.AgentsDir
	}
	if y.Adventures.Paths.ProfilesDir != "" {
		cfg.Paths.ProfilesDir = y.Adventures.Paths.ProfilesDir
	}
	if y.Adventures.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Adventures.Paths.ReportsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Adventures struct {
		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Defaults struct {
			Profile string `yaml:"profile"`
			Model   string `yaml:"model"`
			City    string `yaml:"city"`
		} `yaml:"defaults"`

		Paths struct {
			GuideDir    string `yaml:"guide_dir"`
			AgentsDir   string `yaml:"agents_dir"`
			ProfilesDir string `yaml:"profiles_dir"`
			ReportsDir  string `yaml:"reports_dir"`
		} `yaml:"paths"`
	} `yaml:"adventures"`
}
