// Package utils provides small conversion helpers shared across packages:
// loose scalar coercion for values scanned from the legacy database and
// price rounding/formatting for the remote API wire format.
package utils
