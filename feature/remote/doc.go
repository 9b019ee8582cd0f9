// Package remote implements the commerce API client: product lookup by SKU,
// create/update, batched stock and price updates, and the category listing
// and creation calls used by category resolution.
package remote
