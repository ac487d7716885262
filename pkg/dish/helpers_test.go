package dish

import (
	"Dish-Discovery/entities"
	"Dish-Discovery/internal/database/dbtest"
	"Dish-Discovery/internal/utils/storage"
	"Dish-Discovery/pkg/restaurant"
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]string{}}
}

func (s *fakeS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowExt ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed(ext, allowExt) {
		return "", storage.ErrFileNotAllowed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s/%s%s", folder, fileName, ext)
	s.objects[key] = file.Filename
	return key, nil
}

func (s *fakeS3) UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowExt ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed(ext, allowExt) {
		return "", storage.ErrFileNotAllowed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSuffix(objectKey, filepath.Ext(objectKey)) + ext
	s.objects[key] = file.Filename
	return key, nil
}

func (s *fakeS3) DeleteFile(ctx context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.test/" + objectKey
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, "https://bucket.test/") {
		return ""
	}
	return strings.TrimPrefix(link, "https://bucket.test/")
}

func allowed(ext string, allowExt []string) bool {
	for _, a := range allowExt {
		if a == ext {
			return true
		}
	}
	return len(allowExt) == 0
}

type fixture struct {
	db      *gorm.DB
	repo    DishRepository
	s3      *fakeS3
	service DishService
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.OpenTestDB(t)
	repo := NewDishRepository(db)
	f := &fixture{db: db, repo: repo, s3: newFakeS3()}

	authz := restaurant.NewAuthorizationService(repo, repo.Restaurants())
	f.service = NewDishService(repo, authz, f.s3, nil, func() time.Time { return testNow })
	return f
}

func (f *fixture) restaurant(t *testing.T, mutate ...func(r *entities.Restaurant)) *entities.Restaurant {
	r := &entities.Restaurant{
		ID:            uuid.New(),
		Name:          "Resto " + uuid.NewString()[:8],
		City:          "Jakarta",
		GeoStatus:     entities.GeoStatusPending,
		OwnershipType: entities.OwnershipCommunity,
		ClaimStatus:   entities.ClaimStatusNone,
		Timestamp:     entities.Timestamp{CreatedAt: testNow.Add(-720 * time.Hour), UpdatedAt: testNow.Add(-720 * time.Hour)},
	}
	for _, m := range mutate {
		m(r)
	}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func (f *fixture) dish(t *testing.T, r *entities.Restaurant, name string, author uuid.UUID, ageDays int, mutate ...func(d *entities.Dish)) *entities.Dish {
	created := testNow.Add(-time.Duration(ageDays) * 24 * time.Hour)
	d := &entities.Dish{
		ID:              uuid.New(),
		Name:            name,
		RestaurantID:    r.ID,
		FoodType:        entities.FoodTypeOther,
		CreatedByUserID: author,
		Timestamp:       entities.Timestamp{CreatedAt: created, UpdatedAt: created},
	}
	for _, m := range mutate {
		m(d)
	}
	require.NoError(t, f.db.Create(d).Error)
	return d
}

// save toggles a save for each user and fails the test on any error.
func (f *fixture) save(t *testing.T, d *entities.Dish, users ...uuid.UUID) {
	for _, u := range users {
		res, err := f.service.ToggleSave(context.Background(), d.ID.String(), u.String())
		require.NoError(t, err)
		require.True(t, res.Active)
	}
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *entities.Dish {
	d, err := f.repo.GetDishByID(context.Background(), id.String())
	require.NoError(t, err)
	return d
}

func users(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func strPtr(s string) *string { return &s }
