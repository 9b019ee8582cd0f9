// Package sync is the reconciliation engine: it compares the source catalog
// against the remote store and converges the remote side through create,
// update and batch update calls.
//
// # Passes
//
//   - Products: full upsert of every active item, including price
//     conversion, category resolution and image publishing.
//   - Stock and prices: lightweight batched refresh of existing items only.
//   - Categories: ensures the source category tree exists remotely.
//
// A scheduler drives the passes on independent cadences from a single
// control goroutine, and a Fiber handler exposes start/stop/status plus
// single item sync over HTTP.
package sync
