package sync

// Config holds configuration for the reconciliation engine and scheduler.
type Config struct {
	// Enabled controls whether the sync feature is loaded.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BatchSize is the number of items per batch stock/price update.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// ProductsIntervalMinutes is the full product pass cadence.
	ProductsIntervalMinutes int `mapstructure:"products_interval_minutes" default:"30"`
	// CategoriesIntervalMinutes is the category pass cadence.
	CategoriesIntervalMinutes int `mapstructure:"categories_interval_minutes" default:"60"`
	// StockPricesIntervalMinutes is the stock and price pass cadence.
	StockPricesIntervalMinutes int `mapstructure:"stock_prices_interval_minutes" default:"15"`
	// TickSeconds is how often the scheduler checks for due jobs.
	TickSeconds int `mapstructure:"tick_seconds" default:"60"`
	// CategoryListTTLMinutes bounds how long the remote category listing
	// is reused before refetching.
	CategoryListTTLMinutes int `mapstructure:"category_list_ttl_minutes" default:"10"`
	// MappingTTLHours is how long resolved category mappings persist.
	MappingTTLHours int `mapstructure:"mapping_ttl_hours" default:"720"`
	// RatesURL serves the exchange rate table; empty disables conversion.
	RatesURL string `mapstructure:"rates_url" default:""`
	// RatesTTLMinutes bounds how long a fetched rate table is reused.
	RatesTTLMinutes int `mapstructure:"rates_ttl_minutes" default:"60"`
	// BaseCurrency is the currency the remote store prices in.
	BaseCurrency string `mapstructure:"base_currency" default:"TRY"`
}
