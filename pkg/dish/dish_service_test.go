package dish

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/entities"
	"Dish-Discovery/internal/utils/storage"
	"context"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mime/multipart"
	"testing"
)

func TestAddDishProvisionsRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := uuid.New()

	res, err := f.service.AddDish(ctx, domain.AddDishRequest{
		Name:           "  Tonkotsu Ramen ",
		RestaurantName: "Ichiraku",
		RestaurantCity: "Konoha",
		FoodType:       "Ramen",
	}, author.String())
	require.NoError(t, err)
	assert.Equal(t, "Tonkotsu Ramen", res.Name)
	assert.Equal(t, "Ichiraku", res.RestaurantName)
	assert.Equal(t, author.String(), res.CreatedByUserID)
	assert.Equal(t, 5, res.Score)

	var provisioned entities.Restaurant
	require.NoError(t, f.db.Where("id = ?", res.RestaurantID).First(&provisioned).Error)
	assert.Equal(t, entities.OwnershipCommunity, provisioned.OwnershipType)
	assert.Equal(t, entities.ClaimStatusNone, provisioned.ClaimStatus)
	assert.Equal(t, entities.GeoStatusPending, provisioned.GeoStatus)

	again, err := f.service.AddDish(ctx, domain.AddDishRequest{
		Name:           "Miso Ramen",
		RestaurantName: "ichiraku",
		RestaurantCity: "KONOHA",
		FoodType:       "Ramen",
	}, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, res.RestaurantID, again.RestaurantID)

	var count int64
	require.NoError(t, f.db.Model(&entities.Restaurant{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddDishMatchesRestaurantWithinCity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paris, err := f.service.AddDish(ctx, domain.AddDishRequest{
		Name: "Croque Monsieur", RestaurantName: "Le Bistro", RestaurantCity: "Paris", FoodType: "Other",
	}, uuid.NewString())
	require.NoError(t, err)

	cityless, err := f.service.AddDish(ctx, domain.AddDishRequest{
		Name: "Burger", RestaurantName: "Le Bistro", FoodType: "Burger",
	}, uuid.NewString())
	require.NoError(t, err)
	assert.NotEqual(t, paris.RestaurantID, cityless.RestaurantID)

	again, err := f.service.AddDish(ctx, domain.AddDishRequest{
		Name: "Fries", RestaurantName: "le bistro", FoodType: "Other",
	}, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, cityless.RestaurantID, again.RestaurantID)
}

func TestAddDishValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := uuid.NewString()

	_, err := f.service.AddDish(ctx, domain.AddDishRequest{Name: "  ", RestaurantName: "R", FoodType: "Pizza"}, user)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.AddDish(ctx, domain.AddDishRequest{Name: "X", RestaurantName: "R", FoodType: "Haggis"}, user)
	assert.ErrorIs(t, err, domain.ErrValidation)

	rating := 7.0
	_, err = f.service.AddDish(ctx, domain.AddDishRequest{Name: "X", RestaurantName: "R", FoodType: "Pizza", Rating: &rating}, user)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.AddDish(ctx, domain.AddDishRequest{Name: "X", RestaurantName: "R", FoodType: "Pizza"}, "anonymous")
	assert.ErrorIs(t, err, domain.ErrValidation)

	var count int64
	require.NoError(t, f.db.Model(&entities.Dish{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddDishWithImage(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.AddDish(context.Background(), domain.AddDishRequest{
		Name:           "Pepperoni",
		RestaurantName: "Luigi's",
		FoodType:       "Pizza",
		Image:          &multipart.FileHeader{Filename: "pepperoni.JPG"},
	}, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/dishes/"+res.ID+".jpg", res.ImageURL)

	_, err = f.service.AddDish(context.Background(), domain.AddDishRequest{
		Name:           "Calzone",
		RestaurantName: "Luigi's",
		FoodType:       "Pizza",
		Image:          &multipart.FileHeader{Filename: "calzone.exe"},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRenameClearsSaves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := uuid.New()
	r := f.restaurant(t)
	d := f.dish(t, r, "Nasi Goreng", author, 10)

	savers := users(3)
	f.save(t, d, append(savers, author)...)
	assert.Equal(t, 4, f.reload(t, d.ID).SavedCount)

	res, err := f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{Name: strPtr("Nasi Goreng Special")}, author.String())
	require.NoError(t, err)
	assert.Equal(t, "Nasi Goreng Special", res.Name)
	assert.Equal(t, 0, res.SavedCount)
	assert.Equal(t, author.String(), res.LastEditedByUserID)
	assert.True(t, res.UpdatedAt.Equal(testNow))

	var edges int64
	require.NoError(t, f.db.Model(&entities.DishSave{}).Where("dish_id = ?", d.ID.String()).Count(&edges).Error)
	assert.Zero(t, edges)

	saved, err := f.service.GetSavedDishes(ctx, author.String())
	require.NoError(t, err)
	assert.Empty(t, saved)
	for _, u := range savers {
		saved, err := f.service.GetSavedDishes(ctx, u.String())
		require.NoError(t, err)
		assert.Empty(t, saved)
	}
}

func TestNonRenameUpdatesKeepSaves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := uuid.New()
	r := f.restaurant(t)
	d := f.dish(t, r, "Rendang", author, 10)
	f.save(t, d, users(2)...)

	_, err := f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{ImageURL: strPtr("https://img.test/rendang.png")}, author.String())
	require.NoError(t, err)

	_, err = f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{
		Name:     strPtr("Rendang"),
		FoodType: strPtr("Curry"),
	}, author.String())
	require.NoError(t, err)

	stored := f.reload(t, d.ID)
	assert.Equal(t, 2, stored.SavedCount)
	assert.Equal(t, "https://img.test/rendang.png", stored.ImageURL)
	assert.Equal(t, entities.FoodTypeCurry, stored.FoodType)

	var edges int64
	require.NoError(t, f.db.Model(&entities.DishSave{}).Where("dish_id = ?", d.ID.String()).Count(&edges).Error)
	assert.Equal(t, int64(2), edges)
}

func TestUpdateDishAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, owner, stranger := uuid.New(), uuid.New(), uuid.New()
	r := f.restaurant(t, func(r *entities.Restaurant) {
		r.ClaimStatus = entities.ClaimStatusVerified
		r.OwnershipType = entities.OwnershipOwnerManaged
		r.ClaimedByUserID = &owner
		r.OwnerUserID = &owner
	})
	d := f.dish(t, r, "Soto", author, 10)
	savers := users(3)
	f.save(t, d, savers...)

	savesIntact := func() {
		t.Helper()
		stored := f.reload(t, d.ID)
		assert.Equal(t, "Soto", stored.Name)
		assert.Equal(t, 3, stored.SavedCount)
		var edges int64
		require.NoError(t, f.db.Model(&entities.DishSave{}).Where("dish_id = ?", d.ID.String()).Count(&edges).Error)
		assert.Equal(t, int64(3), edges)
		saved, err := f.service.GetSavedDishes(ctx, savers[0].String())
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, d.ID.String(), saved[0].ID)
	}

	_, err := f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{Name: strPtr("Soto Ayam")}, stranger.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
	savesIntact()

	_, err = f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{Name: strPtr(" ")}, owner.String())
	assert.ErrorIs(t, err, domain.ErrValidation)
	savesIntact()

	_, err = f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{Name: strPtr("Soto Ayam"), FoodType: strPtr("Haggis")}, owner.String())
	assert.ErrorIs(t, err, domain.ErrValidation)
	savesIntact()

	_, err = f.service.UpdateDish(ctx, uuid.NewString(), domain.UpdateDishRequest{Name: strPtr("Soto Ayam")}, owner.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	savesIntact()

	res, err := f.service.UpdateDish(ctx, d.ID.String(), domain.UpdateDishRequest{Name: strPtr("Soto Ayam")}, owner.String())
	require.NoError(t, err)
	assert.Equal(t, "Soto Ayam", res.Name)
	assert.Equal(t, owner.String(), res.LastEditedByUserID)
	assert.Equal(t, author.String(), res.CreatedByUserID)
	assert.Zero(t, res.SavedCount)
}

func TestArchiveAndRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, owner := uuid.New(), uuid.New()
	r := f.restaurant(t, func(r *entities.Restaurant) {
		r.ClaimStatus = entities.ClaimStatusVerified
		r.OwnershipType = entities.OwnershipOwnerManaged
		r.OwnerUserID = &owner
	})
	d := f.dish(t, r, "Gado-gado", author, 10)

	_, err := f.service.ArchiveDish(ctx, d.ID.String(), owner.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	res, err := f.service.ArchiveDish(ctx, d.ID.String(), author.String())
	require.NoError(t, err)
	assert.True(t, res.IsArchived)

	_, err = f.service.ArchiveDish(ctx, d.ID.String(), author.String())
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	feed, err := f.service.GetFeed(ctx, author.String(), true)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = f.service.ToggleSave(ctx, d.ID.String(), author.String())
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.service.GetDish(ctx, d.ID.String(), author.String())
	require.NoError(t, err)
	assert.True(t, got.IsArchived)

	_, err = f.service.RestoreDish(ctx, d.ID.String(), owner.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	res, err = f.service.RestoreDish(ctx, d.ID.String(), author.String())
	require.NoError(t, err)
	assert.False(t, res.IsArchived)
}

func TestToggleSaveAndLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.restaurant(t)
	d := f.dish(t, r, "Sate", uuid.New(), 10)
	u1, u2 := uuid.New(), uuid.New()

	res, err := f.service.ToggleSave(ctx, d.ID.String(), u1.String())
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleResponse{DishID: d.ID.String(), Active: true, Count: 1}, res)

	res, err = f.service.ToggleSave(ctx, d.ID.String(), u2.String())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	res, err = f.service.ToggleSave(ctx, d.ID.String(), u1.String())
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, 1, res.Count)

	res, err = f.service.ToggleLike(ctx, d.ID.String(), u1.String())
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 1, res.Count)

	stored := f.reload(t, d.ID)
	assert.Equal(t, 1, stored.SavedCount)
	assert.Equal(t, 1, stored.LikeCount)
	assert.True(t, stored.UpdatedAt.Equal(d.UpdatedAt))

	liked, err := f.service.GetLikedDishes(ctx, u1.String())
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, d.ID.String(), liked[0].ID)

	_, err = f.service.ToggleLike(ctx, uuid.NewString(), u1.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeedBadgesFrozenUntilReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := uuid.New()
	r := f.restaurant(t)

	a := f.dish(t, r, "a", uuid.New(), 30, func(d *entities.Dish) { d.SavedCount = 5 })
	b := f.dish(t, r, "b", uuid.New(), 30, func(d *entities.Dish) { d.SavedCount = 4 })
	c := f.dish(t, r, "c", uuid.New(), 30, func(d *entities.Dish) { d.SavedCount = 3 })
	d := f.dish(t, r, "d", uuid.New(), 30)

	badges := func(reload bool) map[string]string {
		feed, err := f.service.GetFeed(ctx, viewer.String(), reload)
		require.NoError(t, err)
		out := map[string]string{}
		for _, item := range feed {
			out[item.Name] = item.Badge
		}
		return out
	}

	first := badges(false)
	assert.Equal(t, "Top", first[a.Name])
	assert.Equal(t, "Top", first[b.Name])
	assert.Equal(t, "Top", first[c.Name])
	assert.Equal(t, "", first[d.Name])

	f.save(t, d, users(6)...)

	feed, err := f.service.GetFeed(ctx, viewer.String(), false)
	require.NoError(t, err)
	assert.Equal(t, d.ID.String(), feed[0].ID)
	assert.Equal(t, "", feed[0].Badge)

	frozen := badges(false)
	assert.Equal(t, "Top", frozen[c.Name])

	reloaded := badges(true)
	assert.Equal(t, "Top", reloaded[d.Name])
	assert.Equal(t, "", reloaded[c.Name])
}

func TestSearchDishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := uuid.NewString()
	sushiBar := f.restaurant(t, func(r *entities.Restaurant) { r.Name = "Sushi Tei" })
	diner := f.restaurant(t, func(r *entities.Restaurant) { r.Name = "Route 66" })

	salmon := f.dish(t, sushiBar, "Salmon Nigiri", uuid.New(), 2, func(d *entities.Dish) { d.FoodType = entities.FoodTypeSushi })
	f.dish(t, sushiBar, "Chicken Katsu", uuid.New(), 1, func(d *entities.Dish) { d.FoodType = entities.FoodTypeOther })
	burger := f.dish(t, diner, "Sushi Burger", uuid.New(), 3, func(d *entities.Dish) { d.FoodType = entities.FoodTypeBurger })

	res, err := f.service.SearchDishes(ctx, domain.SearchDishesRequest{Query: "sushi", Cuisine: "Japanese"}, viewer)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, salmon.ID.String(), res[0].ID)

	res, err = f.service.SearchDishes(ctx, domain.SearchDishesRequest{Query: "SUSHI", Cuisine: "American"}, viewer)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, burger.ID.String(), res[0].ID)

	res, err = f.service.SearchDishes(ctx, domain.SearchDishesRequest{Query: "sushi"}, viewer)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Katsu", "Salmon Nigiri", "Sushi Burger"}, names(res))

	_, err = f.service.SearchDishes(ctx, domain.SearchDishesRequest{Query: "sushi", Cuisine: "Klingon"}, viewer)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.SearchDishes(ctx, domain.SearchDishesRequest{Sort: "Spiciness"}, viewer)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNearbyDishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := func(lat, lng float64) func(r *entities.Restaurant) {
		return func(r *entities.Restaurant) {
			r.Latitude, r.Longitude = &lat, &lng
			r.GeoStatus = entities.GeoStatusResolved
		}
	}
	near := f.restaurant(t, at(-6.2000, 106.8166))
	far := f.restaurant(t, at(-6.9175, 107.6191))
	unknown := f.restaurant(t)

	f.dish(t, far, "far", uuid.New(), 5)
	f.dish(t, unknown, "unknown", uuid.New(), 5)
	f.dish(t, near, "close", uuid.New(), 5)

	lat, lng := -6.2088, 106.8456
	res, err := f.service.GetNearbyDishes(ctx, domain.NearbyDishesRequest{Latitude: &lat, Longitude: &lng}, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "close", res[0].Name)
	assert.Equal(t, "far", res[1].Name)
	require.NotNil(t, res[0].DistanceKm)
	assert.Less(t, *res[0].DistanceKm, *res[1].DistanceKm)

	res, err = f.service.GetNearbyDishes(ctx, domain.NearbyDishesRequest{Latitude: &lat, Longitude: &lng, RadiusKm: 10}, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "close", res[0].Name)

	bad := 123.0
	_, err = f.service.GetNearbyDishes(ctx, domain.NearbyDishesRequest{Latitude: &bad, Longitude: &lng}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSuggestDishes(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant(t)
	f.dish(t, r, "Mie Ayam", uuid.New(), 5, func(d *entities.Dish) { d.SavedCount = 1 })
	f.dish(t, r, "Mie Goreng", uuid.New(), 5, func(d *entities.Dish) { d.SavedCount = 9 })
	f.dish(t, r, "Martabak", uuid.New(), 5)

	res, err := f.service.SuggestDishes(context.Background(), "mie", uuid.NewString())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Mie Goreng", res[0].Name)
	assert.Equal(t, r.Name, res[0].RestaurantName)

	res, err = f.service.SuggestDishes(context.Background(), "  ", uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestUploadDishImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := uuid.New()
	r := f.restaurant(t)
	d := f.dish(t, r, "Bakso", author, 5)
	f.save(t, d, users(2)...)

	res, err := f.service.UploadDishImage(ctx, domain.UploadDishImageRequest{
		DishID: d.ID.String(),
		Image:  &multipart.FileHeader{Filename: "bakso.png"},
	}, author.String())
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/dishes/"+d.ID.String()+".png", res.ImageURL)
	assert.Equal(t, 2, res.SavedCount)

	res, err = f.service.UploadDishImage(ctx, domain.UploadDishImageRequest{
		DishID: d.ID.String(),
		Image:  &multipart.FileHeader{Filename: "bakso.webp"},
	}, author.String())
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/dishes/"+d.ID.String()+".webp", res.ImageURL)

	_, err = f.service.UploadDishImage(ctx, domain.UploadDishImageRequest{
		DishID: d.ID.String(),
		Image:  &multipart.FileHeader{Filename: "bakso.png"},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestUploadWithoutStorage(t *testing.T) {
	f := newFixture(t)
	repo := f.repo
	svc := NewDishService(repo, nil, nil, nil, nil)

	_, err := svc.AddDish(context.Background(), domain.AddDishRequest{
		Name:           "Es Teh",
		RestaurantName: "Warteg",
		FoodType:       "Other",
		Image:          &multipart.FileHeader{Filename: "teh.png"},
	}, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrStorageNotConfigured)
}

func names(res []domain.DishResponse) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		out = append(out, r.Name)
	}
	return out
}

func TestPermissions(t *testing.T) {
	f := newFixture(t)
	author, stranger := uuid.New(), uuid.New()
	d := f.dish(t, f.restaurant(t), "Pecel", author, 5)

	res, err := f.service.GetPermissions(context.Background(), d.ID.String(), author.String())
	require.NoError(t, err)
	assert.True(t, res.CanEdit)
	assert.True(t, res.CanArchiveRestore)

	res, err = f.service.GetPermissions(context.Background(), d.ID.String(), stranger.String())
	require.NoError(t, err)
	assert.False(t, res.CanEdit)
	assert.False(t, res.CanArchiveRestore)
}
