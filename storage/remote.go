package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// RemoteClient uploads into the managed backend's object storage.
type RemoteClient struct {
	storageURL string
	apiKey     string
}

func NewRemoteClient(endpoint, apiKey string) *RemoteClient {
	return &RemoteClient{
		storageURL: strings.TrimSuffix(endpoint, "/") + "/storage/v1",
		apiKey:     apiKey,
	}
}

// api returns a fresh storage client. storage-go keeps per-upload options
// in its shared header map, so concurrent uploads must not share one.
func (c *RemoteClient) api() *storage_go.Client {
	return storage_go.NewClient(c.storageURL, c.apiKey, map[string]string{"apikey": c.apiKey})
}

func (c *RemoteClient) Bucket(name string) Bucket {
	return &remoteBucket{client: c, name: name}
}

type remoteBucket struct {
	client *RemoteClient
	name   string
}

func (b *remoteBucket) Upload(ctx context.Context, path string, data []byte, opts UploadOptions) error {
	path, err := cleanPath(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := opts.Upsert

	_, err = b.client.api().UploadFile(b.name, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		var storageErr *storage_go.StorageError
		if errors.As(err, &storageErr) && isConflict(storageErr) {
			return fmt.Errorf("%w: %s/%s", ErrObjectExists, b.name, path)
		}
		return fmt.Errorf("failed to upload %s/%s: %w", b.name, path, err)
	}
	return nil
}

func isConflict(err *storage_go.StorageError) bool {
	return err.Status == http.StatusConflict || strings.Contains(strings.ToLower(err.Message), "already exists")
}

func (b *remoteBucket) PublicURL(path string) string {
	return b.client.api().GetPublicUrl(b.name, strings.TrimPrefix(path, "/")).SignedURL
}
