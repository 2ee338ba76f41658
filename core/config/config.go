package config

import (
	"fmt"
	"reflect"
	"strings"

	"inventory-manager/core/database"
	"inventory-manager/core/logger"
	"inventory-manager/core/server"
	"inventory-manager/core/storage"
	"inventory-manager/core/tables"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Inventory selects the table source and report destinations.
	Inventory tables.Config `mapstructure:"inventory"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the database table source.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. INVENTORY_SOURCE_DIR -> inventory.source_dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks settings that span more than one section.
func (c *Config) Validate() error {
	if err := c.Inventory.Validate(); err != nil {
		return fmt.Errorf("invalid inventory configuration: %w", err)
	}
	if c.Inventory.Publish && c.Inventory.Prune &&
		strings.Trim(c.Storage.ReportPrefix, "/") == strings.Trim(c.Storage.InputPrefix, "/") {
		return fmt.Errorf("invalid storage configuration: report_prefix %q must differ from input_prefix %q when pruning", c.Storage.ReportPrefix, c.Storage.InputPrefix)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
