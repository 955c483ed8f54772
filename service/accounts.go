package service

import (
	"context"
	"errors"
	"time"

	"Dealership/forms"
	"Dealership/jwt"
	"Dealership/models"
	"Dealership/repository"
	"Dealership/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not signed in")
)

type SessionStore interface {
	Create(ctx context.Context, userID string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

type EventBroker interface {
	Publish(ctx context.Context, event session.Event) error
	Subscribe(ctx context.Context, userID string) (*session.Subscription, error)
}

type TokenSigner interface {
	GenerateToken(userID, sessionID string, expiresAt time.Time) (string, error)
	VerifyToken(tokenString string) (*jwt.Claims, error)
}

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

type Accounts struct {
	profiles repository.ProfileRepository
	cars     repository.CarRepository
	orders   repository.OrderRepository
	sessions SessionStore
	events   EventBroker
	signer   TokenSigner
	logger   *zap.Logger
}

func NewAccounts(
	profiles repository.ProfileRepository,
	cars repository.CarRepository,
	orders repository.OrderRepository,
	sessions SessionStore,
	events EventBroker,
	signer TokenSigner,
	logger *zap.Logger,
) *Accounts {
	return &Accounts{
		profiles: profiles,
		cars:     cars,
		orders:   orders,
		sessions: sessions,
		events:   events,
		signer:   signer,
		logger:   logger,
	}
}

func (s *Accounts) SignUp(ctx context.Context, form forms.SignUpForm) (*models.Profile, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

type SignInResult struct {
	Token   string           `json:"-"`
	Session *session.Session `json:"session"`
	Profile *models.Profile  `json:"user"`
}

func (s *Accounts) SignIn(ctx context.Context, form forms.SignInForm) (*SignInResult, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(form.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.signer.GenerateToken(profile.ID, sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, session.Event{Type: session.SignedIn, UserID: profile.ID, SessionID: sess.ID})
	return &SignInResult{Token: token, Session: sess, Profile: profile}, nil
}

func (s *Accounts) SignOut(ctx context.Context, identity Identity) error {
	if err := s.sessions.Delete(ctx, identity.SessionID); err != nil {
		return err
	}
	s.publish(ctx, session.Event{Type: session.SignedOut, UserID: identity.UserID, SessionID: identity.SessionID})
	return nil
}

// Authenticate accepts a token only while its session is still stored.
func (s *Accounts) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.signer.VerifyToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, ErrUnauthenticated
	}
	return &Identity{UserID: sess.UserID, SessionID: sess.ID}, nil
}

func (s *Accounts) CurrentSession(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *Accounts) CurrentUser(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, userID)
}

// SubscribeEvents streams the session changes of one user.
func (s *Accounts) SubscribeEvents(ctx context.Context, userID string) (*session.Subscription, error) {
	return s.events.Subscribe(ctx, userID)
}

type ProfilePage struct {
	Profile *models.Profile `json:"profile"`
	Cars    []models.Car    `json:"cars"`
	Orders  []models.Order  `json:"orders"`
}

func (s *Accounts) ProfilePage(ctx context.Context, userID string) (*ProfilePage, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	page := &ProfilePage{Profile: profile}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cars, err := s.cars.FindOwned(gctx, userID)
		page.Cars = cars
		return err
	})
	g.Go(func() error {
		orders, err := s.orders.ListForUser(gctx, userID)
		page.Orders = orders
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

type DashboardStats struct {
	TotalCars     int     `json:"totalCars"`
	TotalValue    float64 `json:"totalValue"`
	PendingOrders int64   `json:"pendingOrders"`
}

type Dashboard struct {
	Profile *models.Profile `json:"profile"`
	Stats   DashboardStats  `json:"stats"`
}

func (s *Accounts) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cars, err := s.cars.FindOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.CountForUser(ctx, userID, models.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{TotalCars: len(cars), PendingOrders: pending}
	for _, car := range cars {
		stats.TotalValue += car.Price
	}
	return &Dashboard{Profile: profile, Stats: stats}, nil
}

func (s *Accounts) publish(ctx context.Context, event session.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish auth event", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
