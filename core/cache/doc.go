// Package cache implements the hybrid TTL cache backing category mappings,
// exchange rates and remote listings. Entries live in a memory tier for fast
// reads and are mirrored to one JSON file per key so mappings survive
// restarts. A background janitor purges expired entries and bounds the
// memory tier by evicting the oldest written entries first.
package cache
