// Package config loads the run configuration of the xfilter command from an
// optional YAML file, XFILTER_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-xfilter/internal/logging"
	"github.com/cwbudde/algo-xfilter/xray/interp"
)

// EnvPrefix is the prefix of environment overrides, e.g. XFILTER_OUT_DIR.
const EnvPrefix = "XFILTER"

// Keys.
const (
	KeySpectrum  = "spectrum"
	KeyLibrary   = "library"
	KeyTables    = "tables"
	KeyLayers    = "layers"
	KeyMode      = "mode"
	KeyOutDir    = "out.dir"
	KeyOutPrefix = "out.prefix"
	KeyOutXLSX   = "out.xlsx"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
)

var (
	errInvalidConfig = errors.New("invalid configuration")
	errInvalidLayer  = errors.New("invalid layer")
)

// Layer is one filter layer as configured. A zero Density and empty Table
// mean both come from the element library.
type Layer struct {
	Material  string  `mapstructure:"material" yaml:"material"`
	Thickness float64 `mapstructure:"thickness" yaml:"thickness"` // mm
	Density   float64 `mapstructure:"density" yaml:"density,omitempty"`
	Table     string  `mapstructure:"table" yaml:"table,omitempty"`
}

// FromLibrary reports whether the layer needs the element library.
func (l Layer) FromLibrary() bool { return l.Table == "" }

// Output controls where results are written.
type Output struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	XLSX   bool   `mapstructure:"xlsx" yaml:"xlsx"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the complete run configuration.
type Config struct {
	Spectrum string  `mapstructure:"spectrum" yaml:"spectrum"`
	Library  string  `mapstructure:"library" yaml:"library"`
	Tables   string  `mapstructure:"tables" yaml:"tables"`
	Layers   []Layer `mapstructure:"layers" yaml:"layers"`
	Mode     string  `mapstructure:"mode" yaml:"mode"`
	Out      Output  `mapstructure:"out" yaml:"out"`
	Log      Log     `mapstructure:"log" yaml:"log"`
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLibrary, "element/symbol_key.json")
	v.SetDefault(KeyTables, "element")
	v.SetDefault(KeyMode, interp.ModeLogLog.String())
	v.SetDefault(KeyOutDir, ".")
	v.SetDefault(KeyOutPrefix, "filtered")
	v.SetDefault(KeyOutXLSX, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatConsole)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the result.
// Flags must already be bound to v.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// InterpMode returns the configured interpolation mode.
func (c Config) InterpMode() (interp.Mode, error) {
	m, err := interp.ParseMode(c.Mode)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	return m, nil
}

// Validate checks the settings shared by all commands.
func (c Config) Validate() error {
	if _, err := c.InterpMode(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", errInvalidConfig, c.Log.Format)
	}
	for i, l := range c.Layers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: layer %d: %w", errInvalidConfig, i+1, err)
		}
		if l.FromLibrary() && c.Library == "" {
			return fmt.Errorf("%w: layer %d (%s) needs an element library", errInvalidConfig, i+1, l.Material)
		}
	}
	return nil
}

// ValidateApply additionally checks what the apply command needs.
func (c Config) ValidateApply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Spectrum == "" {
		return fmt.Errorf("%w: no spectrum file", errInvalidConfig)
	}
	if c.Out.Dir == "" {
		return fmt.Errorf("%w: empty output directory", errInvalidConfig)
	}
	return nil
}

// Validate checks a single layer.
func (l Layer) Validate() error {
	switch {
	case strings.TrimSpace(l.Material) == "":
		return fmt.Errorf("%w: empty material", errInvalidLayer)
	case math.IsNaN(l.Thickness) || math.IsInf(l.Thickness, 0) || l.Thickness < 0:
		return fmt.Errorf("%w: %s: thickness %v mm", errInvalidLayer, l.Material, l.Thickness)
	case math.IsNaN(l.Density) || l.Density < 0:
		return fmt.Errorf("%w: %s: density %v", errInvalidLayer, l.Material, l.Density)
	case l.Table != "" && l.Density == 0:
		return fmt.Errorf("%w: %s: a custom table needs a density", errInvalidLayer, l.Material)
	}
	return nil
}

// ParseLayer parses a --layer flag value: "SYMBOL:MM" for a library element
// or "NAME:MM:DENSITY:TABLE" for a custom table.
func ParseLayer(s string) (Layer, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 2 && len(parts) != 4 {
		return Layer{}, fmt.Errorf("%w: %q: want NAME:MM or NAME:MM:DENSITY:TABLE", errInvalidLayer, s)
	}

	l := Layer{Material: strings.TrimSpace(parts[0])}
	var err error
	if l.Thickness, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return Layer{}, fmt.Errorf("%w: %q: thickness: %w", errInvalidLayer, s, err)
	}
	if len(parts) == 4 {
		if l.Density, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
			return Layer{}, fmt.Errorf("%w: %q: density: %w", errInvalidLayer, s, err)
		}
		l.Table = strings.TrimSpace(parts[3])
	}
	return l, l.Validate()
}
