package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient keeps buckets as directories under root. The router serves
// root statically so PublicURL resolves to baseURL/<bucket>/<path>.
type LocalClient struct {
	root    string
	baseURL string
}

func NewLocalClient(root, baseURL string) *LocalClient {
	return &LocalClient{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (c *LocalClient) Root() string {
	return c.root
}

func (c *LocalClient) Bucket(name string) Bucket {
	return &localBucket{client: c, name: name}
}

type localBucket struct {
	client *LocalClient
	name   string
}

func (b *localBucket) Upload(ctx context.Context, path string, data []byte, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := cleanPath(path)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(b.client.root, b.name, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create bucket directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Upsert {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrObjectExists, b.name, path)
		}
		return fmt.Errorf("failed to open %s/%s: %w", b.name, path, err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", b.name, path, err)
	}
	return nil
}

func (b *localBucket) PublicURL(path string) string {
	return b.client.baseURL + "/" + b.name + "/" + strings.TrimPrefix(path, "/")
}
