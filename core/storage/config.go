package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the bucket holding input tables and published reports.
	Bucket string `mapstructure:"bucket" default:"inventory"`
	// InputPrefix is the key prefix of the input tables (e.g. "input").
	InputPrefix string `mapstructure:"input_prefix" default:"input"`
	// ReportPrefix is the key prefix reports are published under.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// ObjectKey joins a prefix and a name with a single slash.
func ObjectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	for len(prefix) > 0 && prefix[len(prefix)-1] == '/' {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix + "/" + name
}
