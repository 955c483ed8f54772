package images

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"Dealership/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	CarBucket     = "carimages"
	TradeInBucket = "tradeins"
)

type Resolver struct {
	storage      storage.Client
	allowedHosts map[string]bool
	now          func() time.Time
}

// NewResolver accepts Remote sources only from allowedHosts; an empty list
// accepts any host.
func NewResolver(client storage.Client, allowedHosts []string) *Resolver {
	hosts := make(map[string]bool, len(allowedHosts))
	for _, host := range allowedHosts {
		hosts[strings.ToLower(host)] = true
	}
	return &Resolver{
		storage:      client,
		allowedHosts: hosts,
		now:          time.Now,
	}
}

// Prepare parses every submitted image up front so that nothing is uploaded
// when any of them is unusable.
func (r *Resolver) Prepare(raws []string) ([]Source, error) {
	sources := make([]Source, len(raws))
	for i, raw := range raws {
		source, err := ParseSource(raw)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		if source.Kind == Remote && !r.hostAllowed(source.URL) {
			return nil, fmt.Errorf("image %d: %w", i+1, ErrHostNotAllowed)
		}
		sources[i] = source
	}
	return sources, nil
}

// Resolve uploads the Pending sources concurrently and returns one public
// URL per source, in input order. Remote URLs pass through unchanged. The
// first failed upload cancels the rest; objects already written stay.
func (r *Resolver) Resolve(ctx context.Context, bucketName string, sources []Source) ([]string, error) {
	bucket := r.storage.Bucket(bucketName)
	urls := make([]string, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		i, source := i, source
		if source.Kind == Remote {
			urls[i] = source.URL
			continue
		}

		g.Go(func() error {
			path := r.objectPath(source)
			err := bucket.Upload(gctx, path, source.Data, storage.UploadOptions{
				ContentType: source.ContentType,
				Upsert:      true,
			})
			if err != nil {
				return fmt.Errorf("failed to upload image %d: %w", i+1, err)
			}
			urls[i] = bucket.PublicURL(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *Resolver) objectPath(source Source) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("public/%d-%s%s", r.now().UnixMilli(), id, source.Extension)
}

func (r *Resolver) hostAllowed(raw string) bool {
	if len(r.allowedHosts) == 0 {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return r.allowedHosts[strings.ToLower(u.Host)] || r.allowedHosts[strings.ToLower(u.Hostname())]
}
