// Package config provides configuration management for the Inventory Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Every key has a default declared in the struct tags
// of the partial configurations.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key, shutdown timeout)
//   - Log: Logging level and format
//   - Inventory: table source (file, storage, database), directories and file names
//   - Storage: S3/MinIO credentials, bucket and key prefixes
//   - Database: MySQL or SQLite connection details and table names
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Inventory.SourceDir)
package config
