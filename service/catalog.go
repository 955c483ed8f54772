// Package service implements the storefront flows on top of the
// repositories, redis stores and image storage.
package service

import (
	"context"

	"Dealership/models"
	"Dealership/repository"

	"go.uber.org/zap"
)

const (
	FeaturedLimit = 30
	SimilarLimit  = 3
)

type Catalog struct {
	cars   repository.CarRepository
	logger *zap.Logger
}

func NewCatalog(cars repository.CarRepository, logger *zap.Logger) *Catalog {
	return &Catalog{cars: cars, logger: logger}
}

// ListCars performs a single read with one predicate per present filter.
func (s *Catalog) ListCars(ctx context.Context, filter repository.CarFilter) ([]models.Car, error) {
	cars, err := s.cars.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (s *Catalog) FeaturedCars(ctx context.Context) ([]models.Car, error) {
	return s.cars.FindRecent(ctx, FeaturedLimit)
}

type CarDetail struct {
	Car     *models.Car  `json:"car"`
	Similar []models.Car `json:"similarCars"`
}

// GetCar returns repository.ErrNotFound for an unknown id. A failing
// similar-cars read only empties that list.
func (s *Catalog) GetCar(ctx context.Context, id string) (*CarDetail, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	similar, err := s.cars.FindSimilar(ctx, car, SimilarLimit)
	if err != nil {
		s.logger.Warn("similar cars unavailable", zap.String("car_id", id), zap.Error(err))
		similar = []models.Car{}
	}
	return &CarDetail{Car: car, Similar: similar}, nil
}
