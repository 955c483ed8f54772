// Package storage uploads binary objects into named buckets and resolves
// them to publicly retrievable URLs.
package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrObjectExists = errors.New("object already exists")
	ErrInvalidPath  = errors.New("invalid object path")
)

type UploadOptions struct {
	ContentType string
	// Upsert overwrites an existing object at the same path instead of
	// failing with ErrObjectExists.
	Upsert bool
}

type Bucket interface {
	Upload(ctx context.Context, path string, data []byte, opts UploadOptions) error
	PublicURL(path string) string
}

type Client interface {
	Bucket(name string) Bucket
}

func cleanPath(path string) (string, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return "", ErrInvalidPath
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", ErrInvalidPath
		}
	}
	return path, nil
}
