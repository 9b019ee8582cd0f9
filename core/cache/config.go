package cache

// Config holds configuration for the hybrid cache.
type Config struct {
	// Dir is the directory where persisted entries are stored.
	Dir string `mapstructure:"dir" default:"data/cache"`
	// MaxSize is the maximum number of entries kept in the memory tier.
	MaxSize int `mapstructure:"max_size" default:"1000"`
	// CleanupIntervalSeconds is how often the janitor purges expired entries.
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds" default:"300"`
}
