package repository

import (
	"context"
	"fmt"

	"Dealership/models"

	"gorm.io/gorm"
)

type tradeInRepo struct {
	db *gorm.DB
}

func NewTradeInRepository(db *gorm.DB) TradeInRepository {
	return &tradeInRepo{db: db}
}

func (r *tradeInRepo) Create(ctx context.Context, tradeIn *models.TradeIn) error {
	if tradeIn.CarID == "" || tradeIn.UserID == "" {
		return fmt.Errorf("%w: trade-in needs a car and a user", ErrInvalidInput)
	}
	if len(tradeIn.Images) == 0 {
		return fmt.Errorf("%w: trade-in needs at least one image", ErrInvalidInput)
	}

	if err := r.db.WithContext(ctx).Create(tradeIn).Error; err != nil {
		return fmt.Errorf("failed to create trade-in: %w", err)
	}
	return nil
}

func (r *tradeInRepo) ListForUser(ctx context.Context, userID string) ([]models.TradeIn, error) {
	var tradeIns []models.TradeIn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tradeIns).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trade-ins of %s: %w", userID, err)
	}
	return tradeIns, nil
}
