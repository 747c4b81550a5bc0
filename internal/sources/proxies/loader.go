// Package proxies loads the ordered CORS proxy endpoint list from a
// YAML file, so deployments can override the built-in defaults.
package proxies

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the proxies.yaml shape.
type Config struct {
	// Proxies are endpoint prefixes the URL-encoded target is appended
	// to, tried in listed order.
	Proxies []string `yaml:"proxies"`
}

// Loader handles loading and parsing of the proxies file.
type Loader struct {
	filePath string
}

// NewLoader creates a proxies file loader.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the proxies file, dropping blank entries.
// An empty resulting list is an error; a caller wanting the defaults
// should not configure a file at all.
func (l *Loader) Load() ([]string, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read proxies file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse proxies yaml: %w", err)
	}

	endpoints := make([]string, 0, len(cfg.Proxies))
	for _, p := range cfg.Proxies {
		p = strings.TrimSpace(p)
		if p != "" {
			endpoints = append(endpoints, p)
		}
	}
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no proxy endpoints found in %s", l.filePath)
	}
	return endpoints, nil
}
