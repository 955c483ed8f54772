package repository

import (
	"context"
	"testing"
	"time"

	"Dealership/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestPredicatesOnePerPresentFilter(t *testing.T) {
	filter := CarFilter{Make: strPtr("Toyota"), MaxPrice: floatPtr(20000)}
	require.Len(t, filter.Predicates(), 2)
	assert.Equal(t, []Predicate{
		{Column: "make", Op: OpEqual, Value: "Toyota"},
		{Column: "price", Op: OpLessEqual, Value: 20000.0},
	}, filter.Predicates())

	assert.Empty(t, CarFilter{}.Predicates())

	all := CarFilter{
		Make:         strPtr("Honda"),
		BodyType:     strPtr("SUV"),
		MinPrice:     floatPtr(1000),
		MaxPrice:     floatPtr(9000),
		FuelType:     strPtr("Diesel"),
		Transmission: strPtr("Manual"),
	}
	assert.Len(t, all.Predicates(), 6)
}

type RepositorySuite struct {
	suite.Suite
	db       *gorm.DB
	cars     CarRepository
	orders   OrderRepository
	tradeIns TradeInRepository
	profiles ProfileRepository
	ctx      context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.Require().NoError(db.AutoMigrate(&models.Profile{}, &models.Car{}, &models.UserCar{}, &models.Order{}, &models.TradeIn{}))

	s.db = db
	s.cars = NewCarRepository(db)
	s.orders = NewOrderRepository(db)
	s.tradeIns = NewTradeInRepository(db)
	s.profiles = NewProfileRepository(db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) addCar(owner, brand, bodyType string, price float64) *models.Car {
	car := &models.Car{
		Make:     brand,
		Model:    "Model",
		Year:     2020,
		Price:    price,
		Mileage:  1000,
		FuelType: "Petrol",
		BodyType: bodyType,
		Images:   []string{"https://images.unsplash.com/" + brand + ".jpg"},
		Features: []string{"ABS"},
	}
	s.Require().NoError(s.cars.Create(s.ctx, car, owner))
	return car
}

func (s *RepositorySuite) TestFindAppliesFilters() {
	cheap := s.addCar("dealer", "Toyota", "Sedan", 18000)
	s.addCar("dealer", "Toyota", "SUV", 32000)
	s.addCar("dealer", "Honda", "Sedan", 19000)

	cars, err := s.cars.Find(s.ctx, CarFilter{Make: strPtr("Toyota"), MaxPrice: floatPtr(20000)})
	s.Require().NoError(err)
	s.Require().Len(cars, 1)
	s.Equal(cheap.ID, cars[0].ID)
	s.Equal([]string{"ABS"}, cars[0].Features)

	cars, err = s.cars.Find(s.ctx, CarFilter{})
	s.Require().NoError(err)
	s.Len(cars, 3)

	cars, err = s.cars.Find(s.ctx, CarFilter{MinPrice: floatPtr(19000), BodyType: strPtr("Sedan")})
	s.Require().NoError(err)
	s.Require().Len(cars, 1)
	s.Equal("Honda", cars[0].Make)
}

func (s *RepositorySuite) TestGetByID() {
	car := s.addCar("dealer", "Toyota", "Sedan", 18000)

	found, err := s.cars.GetByID(s.ctx, car.ID)
	s.Require().NoError(err)
	s.Equal(car.Images, found.Images)

	_, err = s.cars.GetByID(s.ctx, "missing")
	s.ErrorIs(err, ErrNotFound)
	_, err = s.cars.GetByID(s.ctx, "")
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *RepositorySuite) TestFindSimilar() {
	target := s.addCar("dealer", "Toyota", "Sedan", 18000)
	s.addCar("dealer", "Toyota", "SUV", 32000)
	s.addCar("dealer", "Honda", "Sedan", 19000)
	s.addCar("dealer", "Kia", "Sedan", 15000)
	s.addCar("dealer", "Mazda", "Sedan", 17000)
	s.addCar("dealer", "Ford", "Truck", 45000)

	similar, err := s.cars.FindSimilar(s.ctx, target, 3)
	s.Require().NoError(err)
	s.Len(similar, 3)
	for _, car := range similar {
		s.NotEqual(target.ID, car.ID)
		s.True(car.Make == "Toyota" || car.BodyType == "Sedan")
	}
}

func (s *RepositorySuite) TestFindRecentNewestFirst() {
	older := s.addCar("dealer", "Toyota", "Sedan", 18000)
	newer := s.addCar("dealer", "Honda", "Sedan", 19000)
	s.Require().NoError(s.db.Model(&models.Car{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	cars, err := s.cars.FindRecent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(cars, 1)
	s.Equal(newer.ID, cars[0].ID)
}

func (s *RepositorySuite) TestUpdateKeepsCreatedAt() {
	car := s.addCar("dealer", "Toyota", "Sedan", 18000)
	stored, err := s.cars.GetByID(s.ctx, car.ID)
	s.Require().NoError(err)

	update := &models.Car{
		Base:     models.Base{ID: car.ID},
		Make:     "Toyota",
		Model:    "Camry",
		Year:     2021,
		Price:    21000,
		Images:   []string{"https://images.unsplash.com/new.jpg"},
		Features: []string{"Sunroof"},
	}
	s.Require().NoError(s.cars.Update(s.ctx, update))

	updated, err := s.cars.GetByID(s.ctx, car.ID)
	s.Require().NoError(err)
	s.Equal("Camry", updated.Model)
	s.Equal([]string{"Sunroof"}, updated.Features)
	s.True(stored.CreatedAt.Equal(updated.CreatedAt))

	update.ID = "missing"
	s.ErrorIs(s.cars.Update(s.ctx, update), ErrNotFound)
}

func (s *RepositorySuite) TestDeleteRemovesOwnership() {
	kept := s.addCar("dealer", "Toyota", "Sedan", 18000)
	removed := s.addCar("dealer", "Honda", "Sedan", 19000)
	s.addCar("someone-else", "Kia", "Sedan", 15000)

	owned, err := s.cars.FindOwned(s.ctx, "dealer")
	s.Require().NoError(err)
	s.Len(owned, 2)

	s.Require().NoError(s.cars.Delete(s.ctx, removed.ID))
	owned, err = s.cars.FindOwned(s.ctx, "dealer")
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal(kept.ID, owned[0].ID)

	var links int64
	s.Require().NoError(s.db.Model(&models.UserCar{}).Where("car_id = ?", removed.ID).Count(&links).Error)
	s.Zero(links)

	s.ErrorIs(s.cars.Delete(s.ctx, removed.ID), ErrNotFound)
}

func (s *RepositorySuite) TestOrdersScopedToUser() {
	car := s.addCar("dealer", "Toyota", "Sedan", 18000)
	order := &models.Order{
		CarID:       car.ID,
		UserID:      "buyer",
		FullName:    "Jane Doe",
		Status:      models.OrderStatusPending,
		TotalAmount: car.Price,
	}
	s.Require().NoError(s.orders.Create(s.ctx, order))
	s.Require().NoError(s.orders.Create(s.ctx, &models.Order{CarID: car.ID, UserID: "buyer", Status: models.OrderStatusCompleted}))

	found, err := s.orders.GetForUser(s.ctx, order.ID, "buyer")
	s.Require().NoError(err)
	s.Require().NotNil(found.Car)
	s.Equal("Toyota", found.Car.Make)
	s.Equal(car.Images, found.Car.Images)

	_, err = s.orders.GetForUser(s.ctx, order.ID, "someone-else")
	s.ErrorIs(err, ErrNotFound)

	list, err := s.orders.ListForUser(s.ctx, "buyer")
	s.Require().NoError(err)
	s.Len(list, 2)

	pending, err := s.orders.CountForUser(s.ctx, "buyer", models.OrderStatusPending)
	s.Require().NoError(err)
	s.Equal(int64(1), pending)

	s.ErrorIs(s.orders.Create(s.ctx, &models.Order{}), ErrInvalidInput)
}

func (s *RepositorySuite) TestTradeIns() {
	tradeIn := &models.TradeIn{
		CarID:     "car",
		UserID:    "buyer",
		Make:      "Ford",
		Condition: "Good",
		Images:    []string{"https://images.unsplash.com/t.jpg"},
		Status:    models.TradeInStatusPending,
	}
	s.Require().NoError(s.tradeIns.Create(s.ctx, tradeIn))

	list, err := s.tradeIns.ListForUser(s.ctx, "buyer")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(tradeIn.Images, list[0].Images)

	s.ErrorIs(s.tradeIns.Create(s.ctx, &models.TradeIn{CarID: "car", UserID: "buyer"}), ErrInvalidInput)
}

func (s *RepositorySuite) TestProfiles() {
	profile := &models.Profile{Username: "dealer_01", Email: "dealer@example.com", PasswordHash: "hash"}
	s.Require().NoError(s.profiles.Create(s.ctx, profile))
	s.NotEmpty(profile.ID)

	found, err := s.profiles.GetByEmail(s.ctx, "dealer@example.com")
	s.Require().NoError(err)
	s.Equal(profile.ID, found.ID)

	_, err = s.profiles.GetByID(s.ctx, "missing")
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.profiles.Create(s.ctx, &models.Profile{Username: "dealer_01", Email: "other@example.com"}), ErrDuplicate)
}
