package sync

import "time"

// JobKind names a scheduled reconciliation pass.
type JobKind string

const (
	JobCategories  JobKind = "categories"
	JobProducts    JobKind = "products"
	JobStockPrices JobKind = "stock_prices"
)

// Result is the outcome of reconciling one item or category path.
type Result struct {
	SKU     string `json:"sku"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SyncRun is a point-in-time snapshot of one job kind for the status
// endpoint.
type SyncRun struct {
	Kind        JobKind   `json:"kind"`
	Running     bool      `json:"running"`
	StartedAt   time.Time `json:"started_at"`
	LastRun     time.Time `json:"last_run"`
	LastSuccess int       `json:"last_success"`
	LastErrors  int       `json:"last_errors"`
}
