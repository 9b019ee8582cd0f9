package transport

// Config holds configuration for the remote API transport.
type Config struct {
	// RequestLimit is the maximum number of requests per window.
	RequestLimit int `mapstructure:"request_limit" default:"10"`
	// WindowSeconds is the length of the rate limit window.
	WindowSeconds int `mapstructure:"window_seconds" default:"1"`
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryDelayMS is the base delay between retries.
	RetryDelayMS int `mapstructure:"retry_delay_ms" default:"500"`
	// Backoff selects the retry delay curve: "linear" or "exponential".
	Backoff string `mapstructure:"backoff" default:"linear"`
	// TimeoutSeconds bounds a single HTTP round trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// SigningSecret enables HMAC request signing when non-empty.
	SigningSecret string `mapstructure:"signing_secret" default:""`
}
