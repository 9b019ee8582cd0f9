// Package transport is the single egress path for remote API calls. Every
// request flows through a sliding window rate limiter, a retry loop with
// linear or exponential backoff, and optional HMAC-SHA256 request signing.
package transport
