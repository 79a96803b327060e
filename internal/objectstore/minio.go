package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"
)

func NewMinIOClient(cfg Config) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	}
	return minio.New(cfg.Endpoint, opts)
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func EnsureBucket(ctx context.Context, client *minio.Client, cfg Config) error {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists: %w", err)
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region})
}

const maxUploads = 4

type objectPutter interface {
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Archiver uploads artifact directories to a bucket, one object per file
// under prefix/<directory name>/<file>.
type Archiver struct {
	client objectPutter
	bucket string
	prefix string
	logger *slog.Logger
}

func NewArchiver(client *minio.Client, cfg Config, logger *slog.Logger) *Archiver {
	return newArchiver(client, cfg, logger)
}

func newArchiver(client objectPutter, cfg Config, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, logger: logger}
}

// ObjectKey is the key a file of an artifact directory is stored under.
func (a *Archiver) ObjectKey(dir, file string) string {
	return path.Join(a.prefix, filepath.Base(dir), file)
}

func (a *Archiver) Archive(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxUploads)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			return a.upload(gctx, dir, name)
		})
	}
	return g.Wait()
}

func (a *Archiver) upload(ctx context.Context, dir, name string) error {
	key := a.ObjectKey(dir, name)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	info, err := a.client.FPutObject(ctx, a.bucket, key, filepath.Join(dir, name),
		minio.PutObjectOptions{ContentType: contentType(name)})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	a.logger.Debug("object uploaded", "bucket", a.bucket, "key", key, "size", info.Size)
	return nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".h5":
		return "application/x-hdf5"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".yml", ".yaml":
		return "application/yaml"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
