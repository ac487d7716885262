package restaurant

import (
	"Dish-Discovery/entities"
	"Dish-Discovery/internal/database/dbtest"
	"context"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type gormDishReader struct {
	db *gorm.DB
}

func (r *gormDishReader) GetDishByID(ctx context.Context, id string) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *gormDishReader) GetActiveDishes(ctx context.Context) ([]*entities.Dish, error) {
	var dishes []*entities.Dish
	err := r.db.WithContext(ctx).Where("is_archived = ?", false).Order("created_at asc").Find(&dishes).Error
	return dishes, err
}

type sentMail struct {
	to, restaurant, status string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Enabled() bool { return true }

func (m *fakeMailer) SendMail(toEmail string, subject string, body string) error { return m.err }

func (m *fakeMailer) SendClaimDecision(toEmail string, restaurant string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{toEmail, restaurant, status})
	return m.err
}

type fixture struct {
	db      *gorm.DB
	repo    RestaurantRepository
	reader  *gormDishReader
	mailer  *fakeMailer
	service RestaurantService
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.OpenTestDB(t)
	f := &fixture{
		db:     db,
		repo:   NewRestaurantRepository(db),
		reader: &gormDishReader{db: db},
		mailer: &fakeMailer{},
	}
	f.service = NewRestaurantService(f.repo, f.reader, f.mailer, func() time.Time { return testNow })
	return f
}

func (f *fixture) restaurant(t *testing.T, mutate ...func(r *entities.Restaurant)) *entities.Restaurant {
	r := &entities.Restaurant{
		ID:            uuid.New(),
		Name:          "Warung " + uuid.NewString()[:8],
		City:          "Jakarta",
		GeoStatus:     entities.GeoStatusPending,
		OwnershipType: entities.OwnershipCommunity,
		ClaimStatus:   entities.ClaimStatusNone,
		Timestamp:     entities.Timestamp{CreatedAt: testNow.Add(-48 * time.Hour), UpdatedAt: testNow.Add(-48 * time.Hour)},
	}
	for _, m := range mutate {
		m(r)
	}
	require.NoError(t, f.repo.CreateRestaurant(context.Background(), r))
	return r
}

func (f *fixture) dish(t *testing.T, restaurantID uuid.UUID, author uuid.UUID, saves int, mutate ...func(d *entities.Dish)) *entities.Dish {
	d := &entities.Dish{
		ID:              uuid.New(),
		Name:            "Dish " + uuid.NewString()[:8],
		RestaurantID:    restaurantID,
		FoodType:        entities.FoodTypeOther,
		SavedCount:      saves,
		CreatedByUserID: author,
		Timestamp:       entities.Timestamp{CreatedAt: testNow.Add(-240 * time.Hour), UpdatedAt: testNow.Add(-240 * time.Hour)},
	}
	for _, m := range mutate {
		m(d)
	}
	require.NoError(t, f.db.Create(d).Error)
	return d
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *entities.Restaurant {
	r, err := f.repo.GetRestaurantByID(context.Background(), id.String())
	require.NoError(t, err)
	return r
}
