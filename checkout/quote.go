// Package checkout holds the price a buyer saw when the order form was
// loaded, so the order is billed at that price.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrQuoteNotFound = errors.New("checkout quote not found or expired")

type Quote struct {
	ID        string    `json:"id"`
	CarID     string    `json:"carId"`
	UserID    string    `json:"userId"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

type QuoteStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQuoteStore(rdb *redis.Client, ttl time.Duration) *QuoteStore {
	return &QuoteStore{rdb: rdb, ttl: ttl}
}

func quoteKey(id string) string {
	return "checkout:quote:" + id
}

func (s *QuoteStore) Create(ctx context.Context, carID, userID string, price float64) (*Quote, error) {
	quote := &Quote{
		ID:        uuid.NewString(),
		CarID:     carID,
		UserID:    userID,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(quote)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, quoteKey(quote.ID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store quote: %w", err)
	}
	return quote, nil
}

// Get returns the quote only when it was issued for carID and userID.
func (s *QuoteStore) Get(ctx context.Context, id, carID, userID string) (*Quote, error) {
	if id == "" {
		return nil, ErrQuoteNotFound
	}

	data, err := s.rdb.Get(ctx, quoteKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	var quote Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	if quote.CarID != carID || quote.UserID != userID {
		return nil, ErrQuoteNotFound
	}
	return &quote, nil
}
