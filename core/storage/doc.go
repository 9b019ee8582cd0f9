// Package storage provides the object storage client used to publish product
// images. It wraps the Minio SDK behind a narrow interface so the image
// publisher can be tested without a live endpoint.
package storage
