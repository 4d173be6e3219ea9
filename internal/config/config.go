package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig   `yaml:"report" envconfig:"REPORT"`
	RatesFile string         `yaml:"rates_file" envconfig:"RATES_FILE"`

	// Rates is resolved from RatesFile (or the defaults) during Load.
	Rates RatesConfig `yaml:"-" ignored:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	ReportTimeout   time.Duration `yaml:"report_timeout" envconfig:"REPORT_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// ReportConfig controls the spreadsheet and chart output
type ReportConfig struct {
	Year        int `yaml:"year" envconfig:"YEAR" default:"2025"`
	ChartWidth  int `yaml:"chart_width" envconfig:"CHART_WIDTH" default:"1024"`
	ChartHeight int `yaml:"chart_height" envconfig:"CHART_HEIGHT" default:"512"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	rates, err := LoadRates(cfg.RatesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate card: %w", err)
	}
	cfg.Rates = rates

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs fills fields the environment left at their defaults with
// values from the config file. Explicit env vars take precedence.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if fileConfig.Server.Port != 0 && os.Getenv(EnvPrefix+"_SERVER_PORT") == "" {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if fileConfig.Server.ReadTimeout != 0 && os.Getenv(EnvPrefix+"_SERVER_READ_TIMEOUT") == "" {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if fileConfig.Server.WriteTimeout != 0 && os.Getenv(EnvPrefix+"_SERVER_WRITE_TIMEOUT") == "" {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if len(fileConfig.Security.AllowedOrigins) > 0 && os.Getenv(EnvPrefix+"_SECURITY_ALLOWED_ORIGINS") == "" {
		envConfig.Security.AllowedOrigins = fileConfig.Security.AllowedOrigins
	}
	if fileConfig.Logging.Level != "" && os.Getenv(EnvPrefix+"_LOGGING_LEVEL") == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" && os.Getenv(EnvPrefix+"_LOGGING_OUTPUT") == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Report.Year != 0 && os.Getenv(EnvPrefix+"_REPORT_YEAR") == "" {
		envConfig.Report.Year = fileConfig.Report.Year
	}
	if envConfig.RatesFile == "" {
		envConfig.RatesFile = fileConfig.RatesFile
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Report.Year < 2000 || c.Report.Year > 2100 {
		return fmt.Errorf("report year %d out of range", c.Report.Year)
	}

	if c.Report.ChartWidth <= 0 || c.Report.ChartHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}

	// Logs are always JSON
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	return c.Rates.Validate()
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		ConfigFileName,
		"configs/" + ConfigFileName,
		"../configs/" + ConfigFileName,
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     DefaultRequestTimeout,
			WriteTimeout:    ReportTimeout,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			ReportTimeout:   ReportTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Report: ReportConfig{
			Year:        DefaultReportYear,
			ChartWidth:  DefaultChartWidth,
			ChartHeight: DefaultChartHeight,
		},
		Rates: DefaultRates(),
	}
}
