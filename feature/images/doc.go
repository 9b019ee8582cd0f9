// Package images publishes product images referenced by the source catalog
// to object storage, handing back public URLs for the remote product
// payloads. Upload results are memoized in the hybrid cache.
package images
