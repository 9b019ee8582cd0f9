package remote

// Config holds configuration for the remote commerce API.
type Config struct {
	// BaseURL is the store root, e.g. https://shop.example.com.
	BaseURL string `mapstructure:"base_url" default:""`
	// APIPrefix is the REST API mount path under the store root.
	APIPrefix string `mapstructure:"api_prefix" default:"/wp-json/wc/v3"`
	// ConsumerKey authenticates API calls.
	ConsumerKey string `mapstructure:"consumer_key" default:""`
	// ConsumerSecret authenticates API calls.
	ConsumerSecret string `mapstructure:"consumer_secret" default:""`
	// PageSize is the per_page value used for paginated listings.
	PageSize int `mapstructure:"page_size" default:"100"`
}
