package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"sync"

	"Dealership/checkout"
	"Dealership/models"
	"Dealership/repository"
	"Dealership/storage"

	"github.com/google/uuid"
)

var errBackend = errors.New("backend unavailable")

type fakeCars struct {
	mu         sync.Mutex
	cars       map[string]models.Car
	owners     map[string]string
	calls      int
	similarErr error
	writeErr   error
	lastFilter repository.CarFilter
}

func newFakeCars(cars ...models.Car) *fakeCars {
	f := &fakeCars{cars: map[string]models.Car{}, owners: map[string]string{}}
	for _, car := range cars {
		f.cars[car.ID] = car
	}
	return f
}

func (f *fakeCars) Find(ctx context.Context, filter repository.CarFilter) ([]models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastFilter = filter
	return f.sorted(), nil
}

func (f *fakeCars) GetByID(ctx context.Context, id string) (*models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	car, ok := f.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &car, nil
}

func (f *fakeCars) FindSimilar(ctx context.Context, car *models.Car, limit int) ([]models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.similarErr != nil {
		return nil, f.similarErr
	}
	var similar []models.Car
	for _, other := range f.sorted() {
		if other.ID != car.ID && (other.Make == car.Make || other.BodyType == car.BodyType) && len(similar) < limit {
			similar = append(similar, other)
		}
	}
	return similar, nil
}

func (f *fakeCars) FindRecent(ctx context.Context, limit int) ([]models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	cars := f.sorted()
	if len(cars) > limit {
		cars = cars[:limit]
	}
	return cars, nil
}

func (f *fakeCars) FindOwned(ctx context.Context, userID string) ([]models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var owned []models.Car
	for _, car := range f.sorted() {
		if f.owners[car.ID] == userID {
			owned = append(owned, car)
		}
	}
	return owned, nil
}

func (f *fakeCars) Create(ctx context.Context, car *models.Car, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.writeErr != nil {
		return f.writeErr
	}
	car.ID = uuid.NewString()
	f.cars[car.ID] = *car
	f.owners[car.ID] = ownerID
	return nil
}

func (f *fakeCars) Update(ctx context.Context, car *models.Car) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.cars[car.ID]; !ok {
		return repository.ErrNotFound
	}
	f.cars[car.ID] = *car
	return nil
}

func (f *fakeCars) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.cars[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.cars, id)
	delete(f.owners, id)
	return nil
}

func (f *fakeCars) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCars) sorted() []models.Car {
	cars := make([]models.Car, 0, len(f.cars))
	for _, car := range f.cars {
		cars = append(cars, car)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars
}

type fakeOrders struct {
	orders    []models.Order
	calls     int
	createErr error
}

func (f *fakeOrders) Create(ctx context.Context, order *models.Order) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = uuid.NewString()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrders) GetForUser(ctx context.Context, id, userID string) (*models.Order, error) {
	f.calls++
	for _, order := range f.orders {
		if order.ID == id && order.UserID == userID {
			return &order, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrders) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	f.calls++
	var orders []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrders) CountForUser(ctx context.Context, userID, status string) (int64, error) {
	f.calls++
	var count int64
	for _, order := range f.orders {
		if order.UserID == userID && order.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeTradeIns struct {
	tradeIns  []models.TradeIn
	createErr error
}

func (f *fakeTradeIns) Create(ctx context.Context, tradeIn *models.TradeIn) error {
	if f.createErr != nil {
		return f.createErr
	}
	tradeIn.ID = uuid.NewString()
	f.tradeIns = append(f.tradeIns, *tradeIn)
	return nil
}

func (f *fakeTradeIns) ListForUser(ctx context.Context, userID string) ([]models.TradeIn, error) {
	var list []models.TradeIn
	for _, tradeIn := range f.tradeIns {
		if tradeIn.UserID == userID {
			list = append(list, tradeIn)
		}
	}
	return list, nil
}

type fakeProfiles struct {
	profiles map[string]models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[string]models.Profile{}}
}

func (f *fakeProfiles) Create(ctx context.Context, profile *models.Profile) error {
	for _, existing := range f.profiles {
		if existing.Email == profile.Email || existing.Username == profile.Username {
			return repository.ErrDuplicate
		}
	}
	profile.ID = uuid.NewString()
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *fakeProfiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (f *fakeProfiles) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	for _, profile := range f.profiles {
		if profile.Email == email {
			return &profile, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeQuotes struct {
	quotes map[string]checkout.Quote
	calls  int
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{quotes: map[string]checkout.Quote{}}
}

func (f *fakeQuotes) Create(ctx context.Context, carID, userID string, price float64) (*checkout.Quote, error) {
	f.calls++
	quote := checkout.Quote{ID: uuid.NewString(), CarID: carID, UserID: userID, Price: price}
	f.quotes[quote.ID] = quote
	return &quote, nil
}

func (f *fakeQuotes) Get(ctx context.Context, id, carID, userID string) (*checkout.Quote, error) {
	f.calls++
	quote, ok := f.quotes[id]
	if !ok || quote.CarID != carID || quote.UserID != userID {
		return nil, checkout.ErrQuoteNotFound
	}
	return &quote, nil
}

// memoryStorage is a storage.Client keeping objects in a map.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failing bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Bucket(name string) storage.Bucket {
	return memoryBucket{storage: m, name: name}
}

func (m *memoryStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type memoryBucket struct {
	storage *memoryStorage
	name    string
}

func (b memoryBucket) Upload(ctx context.Context, path string, data []byte, opts storage.UploadOptions) error {
	b.storage.mu.Lock()
	defer b.storage.mu.Unlock()
	if b.storage.failing {
		return errBackend
	}
	b.storage.objects[b.name+"/"+path] = data
	return nil
}

func (b memoryBucket) PublicURL(path string) string {
	return "https://storage.example.com/" + b.name + "/" + path
}

var pngDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(
	[]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"))
