// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScanPath         string   `toml:"scan_path"`
	SourceExtensions []string `toml:"source_extensions"`
	HeaderExtensions []string `toml:"header_extensions"`
	Exclude          Exclude  `toml:"exclude"`
	Report           Report   `toml:"report"`
	History          History  `toml:"history"`
	Watch            Watch    `toml:"watch"`
	Metrics          Metrics  `toml:"metrics"`
}

type Exclude struct {
	Files []string `toml:"files"` // glob patterns matched against file names
}

type Report struct {
	Sort       string `toml:"sort"` // one of the report sort keys
	Descending bool   `toml:"descending"`
	TSV        string `toml:"tsv"` // write TSV here when set
}

type History struct {
	Path string `toml:"path"` // sqlite file; empty disables history
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Metrics struct {
	Addr string `toml:"addr"` // promhttp listen address; empty disables
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.ScanPath == "" {
		c.ScanPath = "."
	}
	if len(c.SourceExtensions) == 0 {
		c.SourceExtensions = []string{".cpp"}
	}
	if len(c.HeaderExtensions) == 0 {
		c.HeaderExtensions = []string{".h"}
	}
	if c.Report.Sort == "" {
		c.Report.Sort = "contrib-total"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
}
