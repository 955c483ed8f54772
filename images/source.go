// Package images turns submitted image strings into tagged sources and
// resolves them to stored public URLs.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image")
	ErrHostNotAllowed   = errors.New("image host not allowed")
)

type Kind int

const (
	// Remote is an image already reachable at a public URL.
	Remote Kind = iota
	// Pending is raw image content captured locally that still needs an upload.
	Pending
)

func (k Kind) String() string {
	switch k {
	case Remote:
		return "remote"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

type Source struct {
	Kind        Kind
	URL         string
	Data        []byte
	ContentType string
	Extension   string
}

// ParseSource classifies one submitted image: http(s) URLs are Remote and a
// base64 data URL is decoded into a Pending source. The declared media type
// of a data URL is ignored; the content is sniffed instead.
func ParseSource(raw string) (Source, error) {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return Source{}, fmt.Errorf("%w: malformed url", ErrUnsupportedImage)
		}
		return Source{Kind: Remote, URL: raw}, nil

	case strings.HasPrefix(raw, "data:"):
		header, payload, ok := strings.Cut(raw, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return Source{}, fmt.Errorf("%w: data url must be base64 encoded", ErrUnsupportedImage)
		}

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Source{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}

		mtype := mimetype.Detect(data)
		if !strings.HasPrefix(mtype.String(), "image/") {
			return Source{}, fmt.Errorf("%w: content is %s", ErrUnsupportedImage, mtype.String())
		}
		return Source{
			Kind:        Pending,
			Data:        data,
			ContentType: mtype.String(),
			Extension:   mtype.Extension(),
		}, nil

	default:
		return Source{}, fmt.Errorf("%w: expected an http(s) or data url", ErrUnsupportedImage)
	}
}
