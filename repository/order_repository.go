package repository

import (
	"context"
	"errors"
	"fmt"

	"Dealership/models"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.CarID == "" || order.UserID == "" {
		return fmt.Errorf("%w: order needs a car and a user", ErrInvalidInput)
	}

	if err := r.db.WithContext(ctx).Omit("Car").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepo) GetForUser(ctx context.Context, id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Car", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "make", "model", "year", "image_url", "images")
		}).
		First(&order).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

func (r *orderRepo) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Car", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "make", "model", "year")
		}).
		Order("created_at DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of %s: %w", userID, err)
	}
	return orders, nil
}

func (r *orderRepo) CountForUser(ctx context.Context, userID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders of %s: %w", userID, err)
	}
	return count, nil
}
