package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the rest of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ReportTimeout)
				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, 2025, cfg.Report.Year)
				assert.Equal(t, 1024, cfg.Report.ChartWidth)
				assert.Equal(t, DefaultRates(), cfg.Rates)
			},
		},
		{
			name: "env vars override defaults",
			env: map[string]string{
				"SALARYLENS_SERVER_PORT":             "9090",
				"SALARYLENS_SERVER_REPORT_TIMEOUT":   "45s",
				"SALARYLENS_SECURITY_ALLOWED_ORIGINS": "http://a.test,http://b.test",
				"SALARYLENS_LOGGING_LEVEL":           "debug",
				"SALARYLENS_REPORT_YEAR":             "2026",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 45*time.Second, cfg.Server.ReportTimeout)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 2026, cfg.Report.Year)
			},
		},
		{
			name: "config file fills unset values",
			file: "server:\n  port: 7070\nlogging:\n  level: warn\nreport:\n  year: 2030\n",
			env:  map[string]string{"SALARYLENS_LOGGING_LEVEL": "error"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, 2030, cfg.Report.Year)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"SALARYLENS_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "unparseable duration",
			env:     map[string]string{"SALARYLENS_SERVER_READ_TIMEOUT": "soon"},
			wantErr: "failed to load config from env",
		},
		{
			name:    "report year out of range",
			env:     map[string]string{"SALARYLENS_REPORT_YEAR": "1999"},
			wantErr: "report year 1999 out of range",
		},
		{
			name:    "missing rates file",
			env:     map[string]string{"SALARYLENS_RATES_FILE": "does-not-exist.yaml"},
			wantErr: "failed to load rate card",
		},
		{
			name:    "malformed config file",
			file:    "server: [",
			wantErr: "failed to load config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tt.file), 0644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_RatesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("predictor:\n  base_lpa: 5\n"), 0644))
	t.Setenv(RatesFileEnvKey, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.RatesFile)
	assert.Equal(t, 5.0, cfg.Rates.Predictor.BaseLPA)
	assert.Equal(t, 0.25, cfg.Rates.Predictor.PerYear)
}

func TestLoad_ForcesJSONLogs(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SALARYLENS_LOGGING_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestGetConfigFilePath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	assert.Empty(t, getConfigFilePath())

	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", ConfigFileName), []byte("{}"), 0644))
	assert.Equal(t, "configs/"+ConfigFileName, getConfigFilePath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{}"), 0644))
	assert.Equal(t, ConfigFileName, getConfigFilePath())
}

func TestMergeConfigs(t *testing.T) {
	file := Config{
		Server:    ServerConfig{Port: 7000, ReadTimeout: time.Second, WriteTimeout: 2 * time.Second},
		Security:  SecurityConfig{AllowedOrigins: []string{"http://file.test"}},
		Logging:   LoggingConfig{Level: "warn", Output: "file"},
		Report:    ReportConfig{Year: 2031},
		RatesFile: "file-rates.yaml",
	}
	env := *Default()

	merged := mergeConfigs(file, env)
	assert.Equal(t, 7000, merged.Server.Port)
	assert.Equal(t, time.Second, merged.Server.ReadTimeout)
	assert.Equal(t, 2*time.Second, merged.Server.WriteTimeout)
	assert.Equal(t, []string{"http://file.test"}, merged.Security.AllowedOrigins)
	assert.Equal(t, "warn", merged.Logging.Level)
	assert.Equal(t, "file", merged.Logging.Output)
	assert.Equal(t, 2031, merged.Report.Year)
	assert.Equal(t, "file-rates.yaml", merged.RatesFile)

	t.Run("explicit env wins", func(t *testing.T) {
		t.Setenv("SALARYLENS_SERVER_PORT", "8081")
		env := *Default()
		env.Server.Port = 8081
		env.RatesFile = "env-rates.yaml"

		merged := mergeConfigs(file, env)
		assert.Equal(t, 8081, merged.Server.Port)
		assert.Equal(t, "env-rates.yaml", merged.RatesFile)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "invalid server port"},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: "read timeout"},
		{name: "zero write timeout", mutate: func(c *Config) { c.Server.WriteTimeout = 0 }, wantErr: "write timeout"},
		{name: "no origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }, wantErr: "allowed origin"},
		{name: "year too late", mutate: func(c *Config) { c.Report.Year = 2101 }, wantErr: "out of range"},
		{name: "zero chart width", mutate: func(c *Config) { c.Report.ChartWidth = 0 }, wantErr: "chart dimensions"},
		{name: "bad rates", mutate: func(c *Config) { c.Rates.FairPay.RoundingUnit = 0 }, wantErr: "rounding unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, ReportTimeout, cfg.Server.ReportTimeout)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Security.RateLimit.RPS)
	assert.Equal(t, DefaultBurstSize, cfg.Security.RateLimit.Burst)
	assert.Equal(t, DefaultReportYear, cfg.Report.Year)
	assert.NoError(t, cfg.validate())
}
