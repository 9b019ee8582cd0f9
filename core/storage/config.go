package storage

// Config holds configuration for the image storage provider.
type Config struct {
	// Enabled toggles image publishing. When false no client is created and
	// products sync without images.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket product images are published to.
	Bucket string `mapstructure:"bucket" default:"catalog-images"`
	// PublicBaseURL is the externally reachable base URL of the bucket.
	// Defaults to the endpoint + bucket when empty.
	PublicBaseURL string `mapstructure:"public_base_url" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
