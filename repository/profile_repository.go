package repository

import (
	"context"
	"errors"
	"fmt"

	"Dealership/models"

	"gorm.io/gorm"
)

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("username = ? OR email = ?", profile.Username, profile.Email).
		Count(&count).
		Error
	if err != nil {
		return fmt.Errorf("failed to check profile uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *profileRepo) first(ctx context.Context, query string, arg string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where(query, arg).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}
