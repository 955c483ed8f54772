package service

import (
	"context"

	"Dealership/checkout"
	"Dealership/forms"
	"Dealership/models"
	"Dealership/repository"
	"Dealership/submission"

	"go.uber.org/zap"
)

// QuoteStore is implemented by *checkout.QuoteStore.
type QuoteStore interface {
	Create(ctx context.Context, carID, userID string, price float64) (*checkout.Quote, error)
	Get(ctx context.Context, id, carID, userID string) (*checkout.Quote, error)
}

type Orders struct {
	cars   repository.CarRepository
	orders repository.OrderRepository
	quotes QuoteStore
	logger *zap.Logger
}

func NewOrders(cars repository.CarRepository, orders repository.OrderRepository, quotes QuoteStore, logger *zap.Logger) *Orders {
	return &Orders{cars: cars, orders: orders, quotes: quotes, logger: logger}
}

type OrderFormPage struct {
	Car     *models.Car     `json:"car"`
	Form    forms.OrderForm `json:"form"`
	QuoteID string          `json:"quoteId"`
}

// LoadForm reads the car once and records its current price as the quote
// the order will be billed at.
func (s *Orders) LoadForm(ctx context.Context, carID, userID string) (*OrderFormPage, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	quote, err := s.quotes.Create(ctx, car.ID, userID, car.Price)
	if err != nil {
		return nil, err
	}
	return &OrderFormPage{Car: car, Form: forms.NewOrderForm(), QuoteID: quote.ID}, nil
}

// Place validates before any backend call and bills the quoted price; the
// car is not read again.
func (s *Orders) Place(ctx context.Context, carID, userID, quoteID string, form forms.OrderForm) (*models.Order, error) {
	attempt := submission.Begin("order", s.logger)
	if err := forms.Validate(form); err != nil {
		return nil, attempt.Fail(err)
	}
	if err := attempt.Advance(submission.Persisting); err != nil {
		return nil, attempt.Fail(err)
	}

	quote, err := s.quotes.Get(ctx, quoteID, carID, userID)
	if err != nil {
		return nil, attempt.Fail(err)
	}

	order := form.Order(carID, userID, quote.Price)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, attempt.Fail(err)
	}
	return order, attempt.Succeed()
}

func (s *Orders) Get(ctx context.Context, id, userID string) (*models.Order, error) {
	return s.orders.GetForUser(ctx, id, userID)
}

func (s *Orders) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListForUser(ctx, userID)
}
