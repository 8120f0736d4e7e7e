package domain

// Config represents the workspace configuration loaded from adventures.yaml.
type Config struct {
	Masking  MaskingConfig
	Defaults DefaultsConfig
	Paths    PathsConfig
}

type MaskingConfig struct {
	Enabled bool
}

type DefaultsConfig struct {
	Profile string
	Model   string
	City    string
}

type PathsConfig struct {
	GuideDir    string
	AgentsDir   string
	ProfilesDir string
	ReportsDir  string
}

// DefaultConfig provides sane defaults if adventures.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Masking: MaskingConfig{Enabled: true},
		Defaults: DefaultsConfig{
			Profile: "local",
			Model:   "llama3.2",
			City:    "London",
		},
		Paths: PathsConfig{
			GuideDir:    "guide",
			AgentsDir:   "agents",
			ProfilesDir: "profiles",
			ReportsDir:  "reports",
		},
	}
}
