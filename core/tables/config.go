package tables

import (
	"fmt"

	"inventory-manager/core/database"
)

// Config selects where the input tables come from and where reports go.
type Config struct {
	// Source is the table source: file, storage or database.
	Source string `mapstructure:"source" default:"file"`
	// SourceDir is the directory read by the file source.
	SourceDir string `mapstructure:"source_dir" default:"."`
	// OutputDir is the directory reports are written to.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// ManufacturerFile is the name of the manufacturer table file or object.
	ManufacturerFile string `mapstructure:"manufacturer_file" default:"ManufacturerList.txt"`
	// PriceFile is the name of the price table file or object.
	PriceFile string `mapstructure:"price_file" default:"PriceList.txt"`
	// ServiceDatesFile is the name of the service date table file or object.
	ServiceDatesFile string `mapstructure:"service_dates_file" default:"ServiceDatesList.txt"`
	// Publish also uploads reports to object storage.
	Publish bool `mapstructure:"publish" default:"false"`
	// Prune removes published reports that were not produced by the latest run.
	Prune bool `mapstructure:"prune" default:"false"`
}

const (
	SourceFile     = "file"
	SourceStorage  = "storage"
	SourceDatabase = "database"
)

// Validate checks the source driver and file names.
func (c Config) Validate() error {
	switch c.Source {
	case SourceFile, SourceStorage, SourceDatabase:
	default:
		return fmt.Errorf("unknown inventory source %q (want %s, %s or %s)", c.Source, SourceFile, SourceStorage, SourceDatabase)
	}
	if c.ManufacturerFile == "" || c.PriceFile == "" || c.ServiceDatesFile == "" {
		return fmt.Errorf("inventory table file names must not be empty")
	}
	return nil
}

// Set locates the three input tables.
type Set struct {
	Manufacturers Table
	Prices        Table
	ServiceDates  Table
}

// NewSet builds the table locations from the inventory and database settings.
func NewSet(cfg Config, db database.Config) Set {
	return Set{
		Manufacturers: Table{Kind: KindManufacturers, File: cfg.ManufacturerFile, DBTable: db.ManufacturerTable},
		Prices:        Table{Kind: KindPrices, File: cfg.PriceFile, DBTable: db.PriceTable},
		ServiceDates:  Table{Kind: KindServiceDates, File: cfg.ServiceDatesFile, DBTable: db.ServiceDateTable},
	}
}
