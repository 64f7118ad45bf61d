package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"clovercli/internal/clover"
)

// ErrMissingCredentials signals that no access token or merchant id could be
// resolved from any source. The CLI prints remediation guidance for it.
var ErrMissingCredentials = errors.New("missing Clover API credentials")

// Config represents the complete application configuration.
type Config struct {
	Clover  CloverConfig  `yaml:"clover"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// CloverConfig contains the merchant API credentials and transport settings.
type CloverConfig struct {
	AccessToken string        `yaml:"access_token" envconfig:"ACCESS_TOKEN" validate:"required"`
	MerchantID  string        `yaml:"merchant_id" envconfig:"MERCHANT_ID" validate:"required"`
	BaseURL     string        `yaml:"base_url" envconfig:"BASE_URL" validate:"omitempty,url"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// ReportConfig contains report presentation settings.
type ReportConfig struct {
	Organization string `yaml:"organization" envconfig:"ORGANIZATION"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Overrides carries credential values supplied on the command line. Flags
// take precedence over every other source; EnvOnly restricts resolution to
// the environment (plus a .env file) and skips the config file.
type Overrides struct {
	AccessToken string
	MerchantID  string
	EnvOnly     bool
}

// Load resolves configuration with the precedence
// flags > environment > config file > defaults.
//
// Environment variables use the CLOVER prefix (CLOVER_ACCESS_TOKEN,
// CLOVER_MERCHANT_ID, CLOVER_BASE_URL, ...); a .env file in the working
// directory is honored. The config file is config.yaml, searched in
// conventional locations.
func Load(overrides Overrides) (*Config, error) {
	cfg := Default()

	// Make .env credentials visible to envconfig. Missing file is fine.
	_ = godotenv.Load()

	if !overrides.EnvOnly {
		if path := findConfigFile(); path != "" {
			if err := loadFromFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	// envconfig only assigns fields whose variables are set, so it layers
	// cleanly on top of file values.
	if err := envconfig.Process("CLOVER", &cfg.Clover); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := envconfig.Process("CLOVER_REPORT", &cfg.Report); err != nil {
		return nil, fmt.Errorf("failed to load report config from env: %w", err)
	}
	if err := envconfig.Process("CLOVER_LOG", &cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to load logging config from env: %w", err)
	}

	if overrides.AccessToken != "" {
		cfg.Clover.AccessToken = overrides.AccessToken
	}
	if overrides.MerchantID != "" {
		cfg.Clover.MerchantID = overrides.MerchantID
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the resolved configuration. Missing credentials map to
// ErrMissingCredentials so the CLI can print remediation guidance.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "required" {
					return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, fe.Namespace())
				}
			}
			return fmt.Errorf("config validation failed: %s", fieldErrs[0].Namespace())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// normalize fills empty fields with usable values.
func (c *Config) normalize() {
	if c.Clover.BaseURL == "" {
		c.Clover.BaseURL = clover.DefaultBaseURL
	}
	if c.Clover.Timeout <= 0 {
		c.Clover.Timeout = clover.DefaultTimeout
	}
	if c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/closeout-report.log"
	}
}

// loadFromFile merges a YAML config file over cfg. Only keys present in the
// file are assigned.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first config file found in conventional
// locations, or "" to use env vars only.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration. Credentials are intentionally
// empty; they must come from a flag, the environment, or the config file.
func Default() *Config {
	return &Config{
		Clover: CloverConfig{
			BaseURL: clover.DefaultBaseURL,
			Timeout: clover.DefaultTimeout,
		},
		Report: ReportConfig{
			Organization: "Belle Nails and Spa",
			OutputDir:    ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "console",
		},
	}
}
