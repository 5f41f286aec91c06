package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GitHubToken string         `yaml:"github_token"`
	Owner       string         `yaml:"owner"`
	Repo        string         `yaml:"repo"`
	Branch      string         `yaml:"branch"`
	ReadmePath  string         `yaml:"readme_path"`
	Output      OutputConfig   `yaml:"output"`
	Timeline    TimelineConfig `yaml:"timeline"`
	Cache       CacheConfig    `yaml:"cache"`
}

type OutputConfig struct {
	Dashboard string `yaml:"dashboard"`
	Timeline  string `yaml:"timeline"`
}

type TimelineConfig struct {
	Months int `yaml:"months"`
}

type CacheConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Owner:      "filecoin-project",
		Repo:       "FIPs",
		Branch:     "master",
		ReadmePath: "README.md",
		Output: OutputConfig{
			Dashboard: "fips-dashboard.html",
			Timeline:  "fips-timeline-tracker.html",
		},
		Timeline: TimelineConfig{Months: 12},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Token resolves the API token: environment first, then config file.
func (c *Config) Token() string {
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok
	}
	return c.GitHubToken
}
