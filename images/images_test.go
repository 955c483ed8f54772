package images

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"Dealership/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func dataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

type recordingClient struct {
	mu      sync.Mutex
	uploads map[string]storage.UploadOptions
	failOn  string
}

func (c *recordingClient) Bucket(name string) storage.Bucket {
	return &recordingBucket{client: c, name: name}
}

type recordingBucket struct {
	client *recordingClient
	name   string
}

func (b *recordingBucket) Upload(ctx context.Context, path string, data []byte, opts storage.UploadOptions) error {
	b.client.mu.Lock()
	defer b.client.mu.Unlock()
	if b.client.failOn != "" && opts.ContentType == b.client.failOn {
		return errors.New("storage unavailable")
	}
	if b.client.uploads == nil {
		b.client.uploads = map[string]storage.UploadOptions{}
	}
	b.client.uploads[b.name+"/"+path] = opts
	return nil
}

func (b *recordingBucket) PublicURL(path string) string {
	return "https://cdn.example.com/" + b.name + "/" + path
}

func TestParseSource(t *testing.T) {
	remote, err := ParseSource("https://images.unsplash.com/photo-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, Remote, remote.Kind)
	assert.Equal(t, "https://images.unsplash.com/photo-1.jpg", remote.URL)

	pending, err := ParseSource(dataURL("image/png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, Pending, pending.Kind)
	assert.Equal(t, "image/png", pending.ContentType)
	assert.Equal(t, ".png", pending.Extension)
	assert.Equal(t, pngBytes, pending.Data)
}

func TestParseSourceRejects(t *testing.T) {
	cases := map[string]string{
		"plain text":     "not-an-image",
		"bad base64":     "data:image/png;base64,@@@",
		"not base64":     "data:image/png,rawdata",
		"not image data": dataURL("image/png", []byte("hello world, plain text")),
		"no host":        "https://",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSource(raw)
			assert.ErrorIs(t, err, ErrUnsupportedImage)
		})
	}
}

func TestPrepareChecksAllowedHosts(t *testing.T) {
	resolver := NewResolver(&recordingClient{}, []string{"images.unsplash.com", "cdn.example.com"})

	_, err := resolver.Prepare([]string{"https://images.unsplash.com/a.jpg", "https://cdn.example.com/carimages/b.jpg"})
	assert.NoError(t, err)

	_, err = resolver.Prepare([]string{"https://evil.example.org/a.jpg"})
	assert.ErrorIs(t, err, ErrHostNotAllowed)

	open := NewResolver(&recordingClient{}, nil)
	_, err = open.Prepare([]string{"https://anywhere.example.org/a.jpg"})
	assert.NoError(t, err)
}

func TestResolvePreservesOrder(t *testing.T) {
	client := &recordingClient{}
	resolver := NewResolver(client, nil)
	resolver.now = func() time.Time { return time.UnixMilli(1700000000000) }

	sources, err := resolver.Prepare([]string{
		"https://images.unsplash.com/existing.jpg",
		dataURL("image/jpeg", jpegBytes),
		dataURL("image/png", pngBytes),
	})
	require.NoError(t, err)

	urls, err := resolver.Resolve(context.Background(), CarBucket, sources)
	require.NoError(t, err)
	require.Len(t, urls, 3)

	assert.Equal(t, "https://images.unsplash.com/existing.jpg", urls[0])
	assert.True(t, strings.HasPrefix(urls[1], "https://cdn.example.com/carimages/public/1700000000000-"))
	assert.True(t, strings.HasSuffix(urls[1], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[2], ".png"))
	assert.NotEqual(t, urls[1], urls[2])

	require.Len(t, client.uploads, 2)
	for _, opts := range client.uploads {
		assert.True(t, opts.Upsert)
	}
}

func TestResolveFailsWhenAnyUploadFails(t *testing.T) {
	client := &recordingClient{failOn: "image/png"}
	resolver := NewResolver(client, nil)

	sources, err := resolver.Prepare([]string{dataURL("image/jpeg", jpegBytes), dataURL("image/png", pngBytes)})
	require.NoError(t, err)

	urls, err := resolver.Resolve(context.Background(), TradeInBucket, sources)
	assert.Error(t, err)
	assert.Nil(t, urls)
}

func TestResolveRemoteOnlyUploadsNothing(t *testing.T) {
	client := &recordingClient{}
	resolver := NewResolver(client, nil)

	sources, err := resolver.Prepare([]string{"https://a.example.com/1.jpg", "https://b.example.com/2.jpg"})
	require.NoError(t, err)

	urls, err := resolver.Resolve(context.Background(), CarBucket, sources)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com/1.jpg", "https://b.example.com/2.jpg"}, urls)
	assert.Empty(t, client.uploads)
}
