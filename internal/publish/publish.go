// Package publish uploads synthesized deployment definitions to an
// S3-compatible asset bucket, from where the deployment pipeline picks them
// up.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/synth"
)

// ObjectPutter is the subset of *minio.Client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// NewClient creates a client for cfg. Without static keys the standard AWS
// environment, shared credentials file and instance role are tried in turn.
func NewClient(cfg Config) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
}

// ObjectKey is the key an artifact is uploaded under.
func ObjectKey(prefix string, name stage.Name, rel string) string {
	return path.Join(strings.Trim(prefix, "/"), strings.ToLower(string(name)), filepath.ToSlash(rel))
}

func contentType(rel string) string {
	switch filepath.Ext(rel) {
	case ".json":
		return "application/json"
	case ".yaml":
		return "application/yaml"
	default:
		return "text/plain"
	}
}

// Upload uploads every file listed in manifest from dir. Templates are
// uploaded concurrently and the manifest last, so a reader that finds the
// manifest also finds every template it lists. It returns the object keys
// in manifest order.
func Upload(ctx context.Context, client ObjectPutter, cfg Config, name stage.Name, dir string, manifest *synth.Manifest) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	files := manifest.Files()
	keys := make([]string, len(files))
	for i, rel := range files {
		keys[i] = ObjectKey(cfg.Prefix, name, rel)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for i, rel := range files {
		if rel == synth.ManifestFile {
			continue
		}
		g.Go(func() error {
			return put(gctx, client, cfg.Bucket, dir, rel, keys[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := put(ctx, client, cfg.Bucket, dir, synth.ManifestFile, keys[0]); err != nil {
		return nil, err
	}
	logger.Info("Artifacts published.", "bucket", cfg.Bucket, "count", len(keys))
	return keys, nil
}

func put(ctx context.Context, client ObjectPutter, bucket, dir, rel, key string) error {
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", rel, err)
	}
	info, err := client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType(rel)})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", rel, bucket, key, err)
	}
	ctxlog.FromContext(ctx).Debug("Artifact uploaded.", "bucket", bucket, "key", key, "etag", info.ETag)
	return nil
}
