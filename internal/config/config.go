package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/filecommander/pkg/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the file commander configuration
type Config struct {
	// Scan settings
	Root string `mapstructure:"root"` // directory scanned when none is given

	// Filter settings
	FileTypes []string `mapstructure:"file_types"`  // keep only these categories
	MinSizeMB float64  `mapstructure:"min_size_mb"` // minimum size in MiB
	StaleDays int      `mapstructure:"stale_days"`  // not accessed for this many days

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // table, csv, json, yaml, md, html
	OutputFile   string `mapstructure:"output_file"`   // output file path
	Limit        int    `mapstructure:"limit"`         // rows shown in table output, 0 = all

	// Export settings
	DatabasePath string `mapstructure:"database_path"` // sqlite export target

	// Extra extensions per category, e.g. {"code": [".kt"]}
	Categories map[string][]string `mapstructure:"categories"`

	Server ServerConfig `mapstructure:"server"`
}

// ServerConfig holds the HTTP browsing API settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Report formats
const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// ReportFormats lists the accepted report formats
var ReportFormats = []string{FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// LoadConfig loads configuration from an optional config file, a .env file,
// environment variables and defaults. An empty configFile looks for
// filecommander.yaml in the working directory.
func LoadConfig(configFile string) (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	v.SetDefault("root", defaultRoot())
	v.SetDefault("file_types", []string{})
	v.SetDefault("min_size_mb", 0.0)
	v.SetDefault("stale_days", 0)
	v.SetDefault("report_format", FormatTable)
	v.SetDefault("output_file", "")
	v.SetDefault("limit", 50)
	v.SetDefault("database_path", "")
	v.SetDefault("server.address", "127.0.0.1:8085")

	// Read environment variables
	v.SetEnvPrefix("FILECOMMANDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("filecommander")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	if !contains(ReportFormats, c.ReportFormat) {
		return fmt.Errorf("report_format must be one of: %s (got: %s)", strings.Join(ReportFormats, ", "), c.ReportFormat)
	}
	if c.MinSizeMB < 0 {
		return fmt.Errorf("min_size_mb must not be negative (got: %v)", c.MinSizeMB)
	}
	if c.StaleDays < 0 {
		return fmt.Errorf("stale_days must not be negative (got: %d)", c.StaleDays)
	}
	for _, ft := range c.FileTypes {
		if !fileType(ft).IsValid() {
			return fmt.Errorf("unknown file type: %s", ft)
		}
	}
	return nil
}

// Filter builds the catalog filter described by the config
func (c *Config) Filter() models.Filter {
	types := make([]models.FileType, 0, len(c.FileTypes))
	for _, ft := range c.FileTypes {
		types = append(types, fileType(ft))
	}
	return models.Filter{
		FileTypes: types,
		MinSizeMB: c.MinSizeMB,
		StaleDays: c.StaleDays,
	}
}

// fileType normalizes a category name; names are matched case-insensitively
func fileType(name string) models.FileType {
	return models.FileType(strings.ToLower(strings.TrimSpace(name)))
}

// ExtraCategories converts Categories into classifier input
func (c *Config) ExtraCategories() map[models.FileType][]string {
	out := make(map[models.FileType][]string, len(c.Categories))
	for name, exts := range c.Categories {
		out[models.FileType(strings.ToLower(name))] = exts
	}
	return out
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultRoot() string {
	return ExpandPath("~/Downloads")
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
