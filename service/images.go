package service

import (
	"context"
	"errors"

	"Dealership/forms"
	"Dealership/images"
	"Dealership/submission"
)

// ImageResolver is implemented by *images.Resolver.
type ImageResolver interface {
	Prepare(raws []string) ([]images.Source, error)
	Resolve(ctx context.Context, bucket string, sources []images.Source) ([]string, error)
}

// prepareImages parses the submitted images; an unusable one is reported
// as a field error before anything is uploaded.
func prepareImages(resolver ImageResolver, raws []string) ([]images.Source, error) {
	sources, err := resolver.Prepare(raws)
	if err != nil {
		if errors.Is(err, images.ErrUnsupportedImage) || errors.Is(err, images.ErrHostNotAllowed) {
			return nil, &forms.ValidationError{Fields: map[string]string{"images": err.Error()}}
		}
		return nil, err
	}
	return sources, nil
}

// uploadImages moves the attempt through UploadingImages when at least one
// source still needs an upload.
func uploadImages(ctx context.Context, attempt *submission.Attempt, resolver ImageResolver, bucket string, sources []images.Source) ([]string, error) {
	for _, source := range sources {
		if source.Kind == images.Pending {
			if err := attempt.Advance(submission.UploadingImages); err != nil {
				return nil, err
			}
			break
		}
	}
	return resolver.Resolve(ctx, bucket, sources)
}
