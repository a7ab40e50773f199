package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the id5100d configuration
type Config struct {
	Radio struct {
		// Mock runs the daemon against the built-in device simulator
		// instead of real hardware.
		Mock bool `yaml:"mock"`

		// CAT control parameters. The ID-5100 talks CI-V on the port
		// labeled SP2.
		Device       string `yaml:"device"`
		BaudRate     int    `yaml:"baud_rate"`
		CIVAddress   int    `yaml:"civ_address"`
		PollInterval int    `yaml:"poll_interval"` // milliseconds

		// Verbose enables protocol-level tracing.
		Verbose bool `yaml:"verbose"`
	} `yaml:"radio"`

	Web struct {
		Port        int    `yaml:"port"`
		BindAddress string `yaml:"bind_address"`
	} `yaml:"web"`

	Storage struct {
		AuditPath  string `yaml:"audit_path"`
		MaxEntries int    `yaml:"max_entries"`
	} `yaml:"storage"`

	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		Console    bool   `yaml:"console"`
		Structured bool   `yaml:"structured"`
		MaxSize    int    `yaml:"max_size"`    // megabytes
		MaxBackups int    `yaml:"max_backups"` // files
		MaxAge     int    `yaml:"max_age"`     // days
		Compress   bool   `yaml:"compress"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if config.Radio.BaudRate == 0 {
		config.Radio.BaudRate = 19200
	}
	if config.Radio.CIVAddress == 0 {
		config.Radio.CIVAddress = 0x8C
	}
	if config.Radio.PollInterval == 0 {
		config.Radio.PollInterval = 1000
	}
	if config.Web.Port == 0 {
		config.Web.Port = 8080
	}
	if config.Web.BindAddress == "" {
		config.Web.BindAddress = "0.0.0.0"
	}
	if config.Storage.MaxEntries == 0 {
		config.Storage.MaxEntries = 10000
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = 10
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = 5
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = 30
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Radio.Mock && c.Radio.Device == "" {
		return fmt.Errorf("radio device is required unless mock mode is enabled")
	}
	if c.Radio.BaudRate < 4800 || c.Radio.BaudRate > 19200 {
		return fmt.Errorf("baud rate %d outside the supported 4800-19200 range", c.Radio.BaudRate)
	}
	if c.Radio.CIVAddress < 0 || c.Radio.CIVAddress > 0xFF {
		return fmt.Errorf("CI-V address 0x%X out of range", c.Radio.CIVAddress)
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}
