// Package config loads the optional YAML configuration file. Command line flags override the
// configuration file, which overrides the built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API    API    `yaml:"api"`
	Backup Backup `yaml:"backup"`
	Drive  Drive  `yaml:"drive"`
}

type API struct {
	URL      string        `yaml:"url"`
	TokenEnv string        `yaml:"token-env"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Backup struct {
	Dir         string `yaml:"dir"`
	Concurrency int    `yaml:"concurrency"`
	OnError     string `yaml:"on-error"`
	Duplicates  string `yaml:"duplicates"`
}

type Drive struct {
	Credentials string `yaml:"credentials"`
	Workdir     string `yaml:"workdir"`
	Folder      string `yaml:"folder"`
}

const (
	DefaultURL      = "https://api.smartsheet.com/2.0"
	DefaultTokenEnv = "SMARTSHEET_ACCESS_TOKEN"
	DefaultTimeout  = 30 * time.Second
)

// NewConfig returns a configuration initialised with the defaults.
func NewConfig() *Config {
	return &Config{
		API: API{
			URL:      DefaultURL,
			TokenEnv: DefaultTokenEnv,
			Timeout:  DefaultTimeout,
		},
		Backup: Backup{
			Concurrency: 1,
			OnError:     "fail-fast",
			Duplicates:  "first",
		},
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (*Config, error) {
	c := NewConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("invalid configuration file %v (%v)", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration file %v (%v)", path, err)
	}

	return c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("missing api.url")
	}

	if strings.TrimSpace(c.API.TokenEnv) == "" {
		return fmt.Errorf("missing api.token-env")
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api.timeout (%v)", c.API.Timeout)
	}

	if c.Backup.Concurrency < 1 {
		return fmt.Errorf("invalid backup.concurrency (%v)", c.Backup.Concurrency)
	}

	switch c.Backup.OnError {
	case "fail-fast", "collect-all":
	default:
		return fmt.Errorf("invalid backup.on-error '%v' - expected 'fail-fast' or 'collect-all'", c.Backup.OnError)
	}

	switch c.Backup.Duplicates {
	case "first", "fail":
	default:
		return fmt.Errorf("invalid backup.duplicates '%v' - expected 'first' or 'fail'", c.Backup.Duplicates)
	}

	return nil
}
