package database

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"inventory"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connection setup, reads and writes.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ManufacturerTable holds id, manufacturer, item_type, damaged.
	ManufacturerTable string `mapstructure:"manufacturer_table" default:"manufacturer_list"`
	// PriceTable holds id, price.
	PriceTable string `mapstructure:"price_table" default:"price_list"`
	// ServiceDateTable holds id, service_date.
	ServiceDateTable string `mapstructure:"service_date_table" default:"service_dates_list"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
