// Package source reads the legacy product catalog: active items with
// prices, tax rates, category paths and per warehouse stock, plus the
// three level category tree. The legacy database is treated as read only.
package source
