package repository

import (
	"context"

	"Dealership/models"
)

type CarRepository interface {
	Find(ctx context.Context, filter CarFilter) ([]models.Car, error)
	GetByID(ctx context.Context, id string) (*models.Car, error)
	FindSimilar(ctx context.Context, car *models.Car, limit int) ([]models.Car, error)
	FindRecent(ctx context.Context, limit int) ([]models.Car, error)
	FindOwned(ctx context.Context, userID string) ([]models.Car, error)

	// Create inserts the listing together with its owner link.
	Create(ctx context.Context, car *models.Car, ownerID string) error
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetForUser(ctx context.Context, id, userID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
	CountForUser(ctx context.Context, userID, status string) (int64, error)
}

type TradeInRepository interface {
	Create(ctx context.Context, tradeIn *models.TradeIn) error
	ListForUser(ctx context.Context, userID string) ([]models.TradeIn, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}
