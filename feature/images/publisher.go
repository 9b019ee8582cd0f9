package images

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-sync/core/cache"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// memoized upload URLs survive restarts so unchanged images are not
// re-uploaded every pass.
const urlTTL = 30 * 24 * time.Hour

// Publisher uploads local product images to object storage and returns
// public URLs the remote API can serve.
type Publisher struct {
	store  storage.Client
	cfg    storage.Config
	cache  *cache.HybridCache
	logger *zap.Logger
}

// NewPublisher creates an image publisher and ensures the bucket exists.
func NewPublisher(ctx context.Context, store storage.Client, cfg storage.Config, hc *cache.HybridCache, logger *zap.Logger) (*Publisher, error) {
	exists, err := store.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := store.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("created image bucket", zap.String("bucket", cfg.Bucket))
	}
	return &Publisher{store: store, cfg: cfg, cache: hc, logger: logger}, nil
}

// Publish uploads the image at localPath and returns its public URL.
// Already published paths are answered from the cache without touching
// storage.
func (p *Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat image %s: %w", localPath, err)
	}

	// Keyed on mtime so an edited image is re-uploaded even inside the TTL.
	cacheKey := fmt.Sprintf("image_url:%s:%d", localPath, info.ModTime().UnixNano())

	var published string
	if p.cache.Get(cacheKey, &published) {
		return published, nil
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", localPath, err)
	}
	defer file.Close()

	objectName := filepath.Base(localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = p.store.PutObject(ctx, p.cfg.Bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", localPath, err)
	}

	published = p.publicURL(objectName)
	if err := p.cache.Set(cacheKey, published, urlTTL); err != nil {
		p.logger.Warn("failed to cache image url", zap.String("path", localPath), zap.Error(err))
	}

	p.logger.Debug("published image",
		zap.String("path", localPath), zap.String("url", published))
	return published, nil
}

func (p *Publisher) publicURL(objectName string) string {
	base := strings.TrimSuffix(p.cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if p.cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + p.cfg.Endpoint
	}
	return base + "/" + p.cfg.Bucket + "/" + objectName
}
