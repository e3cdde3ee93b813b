// Package config holds the harvester configuration, loaded from YAML
// with a small set of environment overrides.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

// Config represents the complete harvester configuration
type Config struct {
	// SiteURL is the catalog base URL used for permalinks and catalog
	// nodes, without trailing slash.
	SiteURL string `yaml:"site_url"`

	// TestEnvironmentHosts disqualify source URIs pointing at staging
	// or test deployments; matching is by substring.
	TestEnvironmentHosts []string `yaml:"test_environment_hosts"`

	// Languages are the supported language codes; DefaultLanguage is
	// assumed for untagged literals.
	Languages       []string `yaml:"languages"`
	DefaultLanguage string   `yaml:"default_language"`

	// ExcludedDatasetIdentifiers are source identifiers that are never
	// imported.
	ExcludedDatasetIdentifiers []string `yaml:"excluded_dataset_identifiers"`

	// ExcludedLicenses drop any distribution carrying one of these
	// license names.
	ExcludedLicenses []string `yaml:"excluded_licenses"`

	// HostRewrites replaces hosts in resource URLs, keyed by the host
	// to replace.
	HostRewrites map[string]string `yaml:"host_rewrites"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a configuration with the standard values
func Default() *Config {
	return &Config{
		SiteURL:         "https://opendata.swiss",
		Languages:       []string{"de", "fr", "it", "en"},
		DefaultLanguage: "de",
		LogLevel:        "info",
	}
}

// Load reads a YAML configuration file, fills in defaults, and applies
// environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "config", "Load", "reading config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", "parsing config file")
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DCATHARVEST_SITE_URL"); v != "" {
		c.SiteURL = v
	}
	if v := os.Getenv("DCATHARVEST_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DCATHARVEST_TEST_ENV_HOSTS"); v != "" {
		c.TestEnvironmentHosts = splitList(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.SiteURL == "" {
		return errors.Errorf("%w: site_url is required", errors.ErrInvalidConfig)
	}
	if strings.HasSuffix(c.SiteURL, "/") {
		c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	}
	if len(c.Languages) == 0 {
		return errors.Errorf("%w: at least one language is required", errors.ErrInvalidConfig)
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = c.Languages[0]
	}
	found := false
	for _, lang := range c.Languages {
		if lang == c.DefaultLanguage {
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("%w: default_language %q is not in languages",
			errors.ErrInvalidConfig, c.DefaultLanguage)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Errorf("%w: unknown log_level %q", errors.ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// IdentifierExcluded reports whether the dataset identifier is on the
// exclusion list
func (c *Config) IdentifierExcluded(identifier string) bool {
	for _, e := range c.ExcludedDatasetIdentifiers {
		if e == identifier {
			return true
		}
	}
	return false
}

// LicenseExcluded reports whether the license name is on the exclusion
// list
func (c *Config) LicenseExcluded(license string) bool {
	for _, e := range c.ExcludedLicenses {
		if e == license {
			return true
		}
	}
	return false
}

// RewriteHost applies the configured host rewrites to a URL
func (c *Config) RewriteHost(url string) string {
	for from, to := range c.HostRewrites {
		if from != "" && strings.Contains(url, from) {
			return strings.Replace(url, from, to, 1)
		}
	}
	return url
}
