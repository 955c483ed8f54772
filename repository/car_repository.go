package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Dealership/models"

	"gorm.io/gorm"
)

type carRepo struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepo{db: db}
}

func (r *carRepo) Find(ctx context.Context, filter CarFilter) ([]models.Car, error) {
	var cars []models.Car
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Car{})).
		Find(&cars).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cars: %w", err)
	}
	return cars, nil
}

func (r *carRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: car id cannot be empty", ErrInvalidInput)
	}

	var car models.Car
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&car).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get car %s: %w", id, err)
	}
	return &car, nil
}

func (r *carRepo) FindSimilar(ctx context.Context, car *models.Car, limit int) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).
		Where("id <> ?", car.ID).
		Where("make = ? OR body_type = ?", car.Make, car.BodyType).
		Limit(limit).
		Find(&cars).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cars similar to %s: %w", car.ID, err)
	}
	return cars, nil
}

func (r *carRepo) FindRecent(ctx context.Context, limit int) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&cars).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent cars: %w", err)
	}
	return cars, nil
}

func (r *carRepo) FindOwned(ctx context.Context, userID string) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).
		Joins("JOIN user_cars ON user_cars.car_id = cars.id").
		Where("user_cars.user_id = ? AND user_cars.is_owner = ?", userID, true).
		Find(&cars).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cars owned by %s: %w", userID, err)
	}
	return cars, nil
}

func (r *carRepo) Create(ctx context.Context, car *models.Car, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner id cannot be empty", ErrInvalidInput)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(car).Error; err != nil {
			return fmt.Errorf("failed to create car: %w", err)
		}

		link := models.UserCar{
			UserID:  ownerID,
			CarID:   car.ID,
			IsOwner: true,
		}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link car %s to owner: %w", car.ID, err)
		}
		return nil
	})
}

func (r *carRepo) Update(ctx context.Context, car *models.Car) error {
	if car.ID == "" {
		return fmt.Errorf("%w: car id cannot be empty", ErrInvalidInput)
	}

	car.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(car).
		Select("make", "model", "year", "price", "mileage", "fuel_type", "transmission",
			"body_type", "color", "image_url", "images", "features", "condition", "updated_at").
		Updates(car)
	if result.Error != nil {
		return fmt.Errorf("failed to update car %s: %w", car.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: car id cannot be empty", ErrInvalidInput)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&models.UserCar{}).Error; err != nil {
			return fmt.Errorf("failed to clear links of car %s: %w", id, err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Car{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete car %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
