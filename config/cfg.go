package config

import (
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/cyrup-ai/blitz-sub000/common"
)

// ViewportConfig describes the initial viewport handed to the style engine's
// Device construction.
type ViewportConfig struct {
	WidthPx     float64            `yaml:"width_px" validate:"gt=0"`
	HeightPx    float64            `yaml:"height_px" validate:"gt=0"`
	Scale       float64            `yaml:"scale" validate:"gt=0"`
	ColorScheme common.ColorScheme `yaml:"color_scheme" validate:"gte=0,lte=1"`
}

// ScreenshotConfig holds defaults for the screenshot engine's builder
// surface.
type ScreenshotConfig struct {
	Format  common.ScreenshotFormat `yaml:"format" validate:"gte=0,lte=2"`
	Quality int                     `yaml:"quality" validate:"gte=0,lte=100"`
}

// DocumentConfig holds document-construction defaults.
type DocumentConfig struct {
	BaseURL               string   `yaml:"base_url,omitempty"`
	UserAgentStylesheets  []string `yaml:"user_agent_stylesheets,omitempty" validate:"dive,required"`
}

// Config is the top-level application configuration, loaded from YAML and
// validated in one pass before use.
type Config struct {
	Logging    LoggingConfig      `yaml:"logging"`
	Reporting  CaptureReportConfig `yaml:"reporting"`
	Viewport   ViewportConfig     `yaml:"viewport"`
	Screenshot ScreenshotConfig   `yaml:"screenshot"`
	Document   DocumentConfig     `yaml:"document"`
}

// Default returns the configuration used when no file is supplied: an
// 800x600 viewport at 1.0 device-pixel-ratio in light mode, PNG screenshots
// at full quality, and console-only "normal" logging.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
		Reporting: CaptureReportConfig{
			Destination: "rendercore-report.zip",
		},
		Viewport: ViewportConfig{
			WidthPx:  800,
			HeightPx: 600,
			Scale:    1.0,
		},
		Screenshot: ScreenshotConfig{
			Format:  common.ScreenshotFormatPNG,
			Quality: 100,
		},
	}
}

// Prepare renders the embedded default configuration as YAML, for a
// "dumpconfig --default" style command that shows what's available to
// override without reading any file.
func Prepare() ([]byte, error) {
	return Dump(Default())
}

// Dump marshals cfg to YAML for display or archival in a capture report.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration to yaml: %w", err)
	}
	return data, nil
}

// LoadConfiguration reads and validates a YAML configuration file. An empty
// path returns the defaults without touching the filesystem.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration %q: %w", path, err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}
