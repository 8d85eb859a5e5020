package client

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk client configuration.
//
//	location: https://example.com/service
//	login: svc-user
//	password: secret
//	persistance_factor: 3
//	negotiation_timeout: 5
//	headers:
//	  - name: X-Tenant
//	    value: acme
type FileConfig struct {
	Location string `yaml:"location"`
	Options  `yaml:",inline"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("client: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data.
func ParseConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("client: parse config: %w", err)
	}
	return &cfg, nil
}

// NewFromConfig creates a client from a FileConfig.
func NewFromConfig(cfg *FileConfig) (*Client, error) {
	if cfg == nil {
		return nil, configErrorf("config", "must not be nil")
	}
	return New(cfg.Location, cfg.Options)
}
