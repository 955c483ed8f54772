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

type TradeIns struct {
	cars     repository.CarRepository
	tradeIns repository.TradeInRepository
	resolver ImageResolver
	logger   *zap.Logger
}

func NewTradeIns(cars repository.CarRepository, tradeIns repository.TradeInRepository, resolver ImageResolver, logger *zap.Logger) *TradeIns {
	return &TradeIns{cars: cars, tradeIns: tradeIns, resolver: resolver, logger: logger}
}

// Submit uploads the trade-in photos and then records the request. The car
// must exist before anything is uploaded; photos already uploaded are kept
// when the insert fails.
func (s *TradeIns) Submit(ctx context.Context, carID, userID string, form forms.TradeInForm) (*models.TradeIn, error) {
	attempt := submission.Begin("trade-in", s.logger)
	if err := forms.Validate(form); err != nil {
		return nil, attempt.Fail(err)
	}
	sources, err := prepareImages(s.resolver, form.Images)
	if err != nil {
		return nil, attempt.Fail(err)
	}
	if _, err := s.cars.GetByID(ctx, carID); err != nil {
		return nil, attempt.Fail(err)
	}

	urls, err := uploadImages(ctx, attempt, s.resolver, images.TradeInBucket, sources)
	if err != nil {
		return nil, attempt.Fail(err)
	}
	if err := attempt.Advance(submission.Persisting); err != nil {
		return nil, attempt.Fail(err)
	}

	tradeIn := form.TradeIn(carID, userID, urls)
	if err := s.tradeIns.Create(ctx, tradeIn); err != nil {
		return nil, attempt.Fail(err)
	}
	return tradeIn, attempt.Succeed()
}

func (s *TradeIns) ListForUser(ctx context.Context, userID string) ([]models.TradeIn, error) {
	return s.tradeIns.ListForUser(ctx, userID)
}
