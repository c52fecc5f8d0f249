package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go-eighties/arp"
	"go-eighties/drums"
)

const (
	MinTempo = 20
	MaxTempo = 300
)

// ArpConfig holds arpeggiator settings
type ArpConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Pattern           int     `yaml:"pattern"`
	Root              uint8   `yaml:"root"`
	TransposeSteps    int     `yaml:"transposeSteps"`
	TransposeDistance int     `yaml:"transposeDistance"`
	Gate              float64 `yaml:"gate"`
}

// DrumConfig holds step sequencer settings
type DrumConfig struct {
	Enabled bool   `yaml:"enabled"`
	Pattern int    `yaml:"pattern"`
	Kit     string `yaml:"kit"`
}

// OutputConfig defines the MIDI output port and channels (1-16)
type OutputConfig struct {
	Port        string `yaml:"port,omitempty"`
	ArpChannel  uint8  `yaml:"arpChannel"`
	DrumChannel uint8  `yaml:"drumChannel"`
}

// Config is the main configuration structure
type Config struct {
	Tempo  float64      `yaml:"tempo"`
	Arp    ArpConfig    `yaml:"arp"`
	Drums  DrumConfig   `yaml:"drums"`
	Output OutputConfig `yaml:"output"`

	Palette string `yaml:"palette,omitempty"` // GIMP .gpl file; empty = built-in
	Debug   bool   `yaml:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo: 120,
		Arp: ArpConfig{
			Enabled:           true,
			Root:              48,
			TransposeSteps:    1,
			TransposeDistance: 12,
			Gate:              0.5,
		},
		Drums: DrumConfig{
			Enabled: true,
			Kit:     drums.DefaultKit,
		},
		Output: OutputConfig{
			ArpChannel:  1,
			DrumChannel: 10,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-eighties"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config from path. A missing file yields defaults.
// Fields absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate clamps out-of-range values in place
func (c *Config) Validate() {
	if !(c.Tempo >= MinTempo) { // also catches NaN
		c.Tempo = MinTempo
	}
	if c.Tempo > MaxTempo {
		c.Tempo = MaxTempo
	}

	c.Arp.Pattern = arp.Wrap(c.Arp.Pattern)
	if c.Arp.TransposeSteps < 1 {
		c.Arp.TransposeSteps = 1
	}
	if c.Arp.Root > 127 {
		c.Arp.Root = 127
	}
	if c.Arp.Gate <= 0 || c.Arp.Gate > 1 {
		c.Arp.Gate = 0.5
	}

	c.Drums.Pattern = drums.Wrap(c.Drums.Pattern)
	if _, ok := drums.Kits[c.Drums.Kit]; !ok {
		c.Drums.Kit = drums.DefaultKit
	}

	c.Output.ArpChannel = clampChannel(c.Output.ArpChannel)
	c.Output.DrumChannel = clampChannel(c.Output.DrumChannel)
}

func clampChannel(ch uint8) uint8 {
	if ch < 1 {
		return 1
	}
	if ch > 16 {
		return 16
	}
	return ch
}
