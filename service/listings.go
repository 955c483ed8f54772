package service

import (
	"context"

	"Dealership/forms"
	"Dealership/images"
	"Dealership/models"
	"Dealership/repository"
	"Dealership/submission"

	"go.uber.org/zap"
)

type Listings struct {
	cars     repository.CarRepository
	resolver ImageResolver
	logger   *zap.Logger
}

func NewListings(cars repository.CarRepository, resolver ImageResolver, logger *zap.Logger) *Listings {
	return &Listings{cars: cars, resolver: resolver, logger: logger}
}

// Load fills the edit form from the stored listing.
func (s *Listings) Load(ctx context.Context, id string) (forms.CarForm, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return forms.CarForm{}, err
	}
	return forms.CarFormFrom(car), nil
}

func (s *Listings) Create(ctx context.Context, ownerID string, form forms.CarForm) (*models.Car, error) {
	attempt := submission.Begin("listing-create", s.logger)
	car, err := s.build(ctx, attempt, form)
	if err != nil {
		return nil, attempt.Fail(err)
	}

	if err := s.cars.Create(ctx, car, ownerID); err != nil {
		return nil, attempt.Fail(err)
	}
	return car, attempt.Succeed()
}

func (s *Listings) Update(ctx context.Context, id string, form forms.CarForm) (*models.Car, error) {
	attempt := submission.Begin("listing-update", s.logger)
	car, err := s.build(ctx, attempt, form)
	if err != nil {
		return nil, attempt.Fail(err)
	}

	car.ID = id
	if err := s.cars.Update(ctx, car); err != nil {
		return nil, attempt.Fail(err)
	}
	return car, attempt.Succeed()
}

func (s *Listings) Delete(ctx context.Context, id string) error {
	return s.cars.Delete(ctx, id)
}

// build validates the form and resolves its images, leaving the attempt in
// Persisting.
func (s *Listings) build(ctx context.Context, attempt *submission.Attempt, form forms.CarForm) (*models.Car, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	sources, err := prepareImages(s.resolver, form.Images)
	if err != nil {
		return nil, err
	}

	urls, err := uploadImages(ctx, attempt, s.resolver, images.CarBucket, sources)
	if err != nil {
		return nil, err
	}
	if err := attempt.Advance(submission.Persisting); err != nil {
		return nil, err
	}
	return form.Car(urls), nil
}
