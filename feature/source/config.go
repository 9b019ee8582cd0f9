package source

// Config holds configuration for reading the source catalog.
type Config struct {
	// Currency assumed for price rows without an explicit currency code.
	Currency string `mapstructure:"currency" default:"TRY"`
	// InboundMovementType is the stock movement type code that adds to
	// stock; every other type subtracts.
	InboundMovementType int `mapstructure:"inbound_movement_type" default:"0"`
}
