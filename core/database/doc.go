// Package database manages the connection to the relational store that is
// the source of truth for the catalog. The connection is read-only from the
// application's point of view; all writes happen on the remote side.
package database
