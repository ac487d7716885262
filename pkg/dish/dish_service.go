package dish

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/entities"
	"Dish-Discovery/internal/utils/storage"
	"Dish-Discovery/pkg/lookup"
	"Dish-Discovery/pkg/ranking"
	"Dish-Discovery/pkg/restaurant"
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
	"time"
)

const (
	suggestLimit    = 8
	dishImageFolder = "dishes"
)

type (
	DishService interface {
		AddDish(ctx context.Context, req domain.AddDishRequest, userID string) (domain.DishResponse, error)
		UpdateDish(ctx context.Context, id string, req domain.UpdateDishRequest, userID string) (domain.DishResponse, error)
		UploadDishImage(ctx context.Context, req domain.UploadDishImageRequest, userID string) (domain.DishResponse, error)
		ArchiveDish(ctx context.Context, id string, userID string) (domain.DishResponse, error)
		RestoreDish(ctx context.Context, id string, userID string) (domain.DishResponse, error)
		GetDish(ctx context.Context, id string, userID string) (domain.DishResponse, error)
		GetPermissions(ctx context.Context, id string, userID string) (domain.DishPermissionsResponse, error)

		ToggleSave(ctx context.Context, id string, userID string) (domain.ToggleResponse, error)
		ToggleLike(ctx context.Context, id string, userID string) (domain.ToggleResponse, error)
		GetSavedDishes(ctx context.Context, userID string) ([]domain.DishResponse, error)
		GetLikedDishes(ctx context.Context, userID string) ([]domain.DishResponse, error)

		// Discovery
		GetFeed(ctx context.Context, userID string, reload bool) ([]domain.DishResponse, error)
		SearchDishes(ctx context.Context, req domain.SearchDishesRequest, userID string) ([]domain.DishResponse, error)
		GetNearbyDishes(ctx context.Context, req domain.NearbyDishesRequest, userID string) ([]domain.DishResponse, error)
		SuggestDishes(ctx context.Context, prefix string, userID string) ([]domain.SuggestionResponse, error)
	}

	dishService struct {
		dishRepository DishRepository
		authorization  restaurant.AuthorizationService
		s3             storage.AwsS3
		lookup         *lookup.Coordinator
		sessions       *sessionStore
		now            func() time.Time
	}
)

func NewDishService(
	dishRepository DishRepository,
	authorization restaurant.AuthorizationService,
	s3 storage.AwsS3,
	coordinator *lookup.Coordinator,
	now func() time.Time,
) DishService {
	if coordinator == nil {
		coordinator = lookup.NewCoordinator(0)
	}
	if now == nil {
		now = time.Now
	}
	return &dishService{
		dishRepository: dishRepository,
		authorization:  authorization,
		s3:             s3,
		lookup:         coordinator,
		sessions:       newSessionStore(sessionTTL),
		now:            now,
	}
}

func (s *dishService) AddDish(ctx context.Context, req domain.AddDishRequest, userID string) (domain.DishResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.DishResponse{}, domain.ErrParseUUID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.DishResponse{}, domain.ErrDishNameEmpty
	}
	restaurantName := strings.TrimSpace(req.RestaurantName)
	if restaurantName == "" {
		return domain.DishResponse{}, domain.ErrRestaurantNameRequired
	}
	foodType := entities.FoodType(req.FoodType)
	if !foodType.Valid() {
		return domain.DishResponse{}, domain.ErrInvalidFoodType
	}
	if err := validateRating(req.Rating); err != nil {
		return domain.DishResponse{}, err
	}

	now := s.now()
	dish := &entities.Dish{
		ID:              uuid.New(),
		Name:            name,
		FoodType:        foodType,
		Rating:          req.Rating,
		CreatedByUserID: userUUID,
		Timestamp:       entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	var objectKey string
	if req.Image != nil {
		if s.s3 == nil {
			return domain.DishResponse{}, storage.ErrStorageNotConfigured
		}
		objectKey, err = s.s3.UploadFile(ctx, dish.ID.String(), req.Image, dishImageFolder, storage.AllowImage...)
		if err != nil {
			return domain.DishResponse{}, imageError(err)
		}
		dish.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	err = s.dishRepository.Transaction(ctx, func(tx DishRepository) error {
		owner, err := s.findOrProvisionRestaurant(ctx, tx.Restaurants(), req, now)
		if err != nil {
			return err
		}
		dish.RestaurantID = owner.ID
		if err := tx.CreateDish(ctx, dish); err != nil {
			return fmt.Errorf("create dish: %w", err)
		}
		dish.Restaurant = owner
		return nil
	})
	if err != nil {
		if objectKey != "" {
			if delErr := s.s3.DeleteFile(ctx, objectKey); delErr != nil {
				log.Warnf("failed to remove orphaned image %s: %v", objectKey, delErr)
			}
		}
		return domain.DishResponse{}, err
	}

	log.Infof("dish %s added to restaurant %s by user %s", dish.ID, dish.RestaurantID, userID)
	res := domain.NewDishResponse(dish)
	res.Score = ranking.Score(dish, now)
	return res, nil
}

func (s *dishService) findOrProvisionRestaurant(ctx context.Context, repo restaurant.RestaurantRepository, req domain.AddDishRequest, now time.Time) (*entities.Restaurant, error) {
	existing, err := repo.FindRestaurantByName(ctx, req.RestaurantName, req.RestaurantCity)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	provisioned := &entities.Restaurant{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.RestaurantName),
		Address:       strings.TrimSpace(req.RestaurantAddress),
		City:          strings.TrimSpace(req.RestaurantCity),
		Country:       strings.TrimSpace(req.RestaurantCountry),
		GeoStatus:     entities.GeoStatusPending,
		OwnershipType: entities.OwnershipCommunity,
		ClaimStatus:   entities.ClaimStatusNone,
		Timestamp:     entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	owner, created, err := repo.ProvisionRestaurant(ctx, provisioned)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	if created {
		log.Infof("restaurant %s provisioned for %q", owner.ID, owner.Name)
	}
	return owner, nil
}

// UpdateDish applies a partial edit. A rename invalidates every save of the
// dish: the edges are deleted and saved_count reset in the same transaction.
func (s *dishService) UpdateDish(ctx context.Context, id string, req domain.UpdateDishRequest, userID string) (domain.DishResponse, error) {
	userUUID, err := s.authorize(ctx, id, userID, s.authorization.CanEdit)
	if err != nil {
		return domain.DishResponse{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return domain.DishResponse{}, domain.ErrDishNameEmpty
	}
	if req.FoodType != nil && !entities.FoodType(*req.FoodType).Valid() {
		return domain.DishResponse{}, domain.ErrInvalidFoodType
	}
	if err := validateRating(req.Rating); err != nil {
		return domain.DishResponse{}, err
	}

	now := s.now()
	var updated *entities.Dish
	err = s.dishRepository.Transaction(ctx, func(tx DishRepository) error {
		dish, err := tx.GetDishForUpdate(ctx, id)
		if err != nil {
			return dishError(err)
		}

		fields := map[string]interface{}{
			"updated_at":             now,
			"last_edited_by_user_id": userUUID,
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name != dish.Name {
				cleared, err := tx.ClearSaves(ctx, id)
				if err != nil {
					return fmt.Errorf("clear saves: %w", err)
				}
				fields["name"] = name
				fields[columnSavedCount] = 0
				log.Infof("dish %s renamed, %d saves cleared", id, cleared)
			}
		}
		if req.FoodType != nil {
			fields["food_type"] = *req.FoodType
		}
		if req.ImageURL != nil {
			fields["image_url"] = *req.ImageURL
		}
		if req.Rating != nil {
			fields["rating"] = *req.Rating
		}

		if err := tx.UpdateDishFields(ctx, id, fields); err != nil {
			return fmt.Errorf("update dish: %w", err)
		}
		updated, err = tx.GetDishByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.DishResponse{}, err
	}
	return s.present(updated, nil, now), nil
}

func (s *dishService) UploadDishImage(ctx context.Context, req domain.UploadDishImageRequest, userID string) (domain.DishResponse, error) {
	userUUID, err := s.authorize(ctx, req.DishID, userID, s.authorization.CanEdit)
	if err != nil {
		return domain.DishResponse{}, err
	}
	if req.Image == nil {
		return domain.DishResponse{}, fmt.Errorf("%w: image is required", domain.ErrValidation)
	}
	if s.s3 == nil {
		return domain.DishResponse{}, storage.ErrStorageNotConfigured
	}

	dish, err := s.dishRepository.GetDishByID(ctx, req.DishID)
	if err != nil {
		return domain.DishResponse{}, dishError(err)
	}

	var objectKey string
	if current := s.s3.GetObjectKeyFromLink(dish.ImageURL); current != "" {
		objectKey, err = s.s3.UpdateFile(ctx, current, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, dish.ID.String(), req.Image, dishImageFolder, storage.AllowImage...)
	}
	if err != nil {
		return domain.DishResponse{}, imageError(err)
	}

	now := s.now()
	if err := s.dishRepository.UpdateDishFields(ctx, req.DishID, map[string]interface{}{
		"image_url":              s.s3.GetPublicLinkKey(objectKey),
		"updated_at":             now,
		"last_edited_by_user_id": userUUID,
	}); err != nil {
		return domain.DishResponse{}, fmt.Errorf("update dish image: %w", err)
	}

	dish, err = s.dishRepository.GetDishByID(ctx, req.DishID)
	if err != nil {
		return domain.DishResponse{}, dishError(err)
	}
	return s.present(dish, nil, now), nil
}

func (s *dishService) ArchiveDish(ctx context.Context, id string, userID string) (domain.DishResponse, error) {
	return s.setArchived(ctx, id, userID, true)
}

func (s *dishService) RestoreDish(ctx context.Context, id string, userID string) (domain.DishResponse, error) {
	return s.setArchived(ctx, id, userID, false)
}

func (s *dishService) setArchived(ctx context.Context, id string, userID string, archived bool) (domain.DishResponse, error) {
	userUUID, err := s.authorize(ctx, id, userID, s.authorization.CanArchiveOrRestore)
	if err != nil {
		return domain.DishResponse{}, err
	}

	now := s.now()
	var updated *entities.Dish
	err = s.dishRepository.Transaction(ctx, func(tx DishRepository) error {
		dish, err := tx.GetDishForUpdate(ctx, id)
		if err != nil {
			return dishError(err)
		}
		if dish.IsArchived == archived {
			if archived {
				return fmt.Errorf("%w: dish is already archived", domain.ErrInvalidStateTransition)
			}
			return fmt.Errorf("%w: dish is not archived", domain.ErrInvalidStateTransition)
		}

		if err := tx.UpdateDishFields(ctx, id, map[string]interface{}{
			"is_archived":            archived,
			"updated_at":             now,
			"last_edited_by_user_id": userUUID,
		}); err != nil {
			return fmt.Errorf("update dish: %w", err)
		}
		updated, err = tx.GetDishByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.DishResponse{}, err
	}
	return s.present(updated, nil, now), nil
}

func (s *dishService) GetDish(ctx context.Context, id string, userID string) (domain.DishResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DishResponse{}, domain.ErrDishNotFound
	}
	dish, err := s.dishRepository.GetDishByID(ctx, id)
	if err != nil {
		return domain.DishResponse{}, dishError(err)
	}

	now := s.now()
	if session := s.sessions.peek(userID, now); session != nil {
		return s.present(dish, session, now), nil
	}

	res := s.present(dish, nil, now)
	if !dish.IsArchived {
		pool, err := s.dishRepository.GetActiveDishes(ctx)
		if err != nil {
			return domain.DishResponse{}, fmt.Errorf("load catalog: %w", err)
		}
		res.Badge = string(ranking.ClassifyAll(pool, now)[dish.ID])
	}
	return res, nil
}

func (s *dishService) GetPermissions(ctx context.Context, id string, userID string) (domain.DishPermissionsResponse, error) {
	canEdit, err := s.authorization.CanEdit(ctx, id, userID)
	if err != nil {
		return domain.DishPermissionsResponse{}, err
	}
	canArchive, err := s.authorization.CanArchiveOrRestore(ctx, id, userID)
	if err != nil {
		return domain.DishPermissionsResponse{}, err
	}
	return domain.DishPermissionsResponse{
		DishID:            id,
		CanEdit:           canEdit,
		CanArchiveRestore: canArchive,
	}, nil
}

func (s *dishService) ToggleSave(ctx context.Context, id string, userID string) (domain.ToggleResponse, error) {
	return s.toggle(ctx, id, userID, edge{
		column: columnSavedCount,
		has:    DishRepository.HasSave,
		remove: DishRepository.RemoveSave,
		count:  DishRepository.CountSaves,
		add: func(tx DishRepository, ctx context.Context, dishID, userID uuid.UUID, now time.Time) error {
			return tx.AddSave(ctx, &entities.DishSave{DishID: dishID, UserID: userID, CreatedAt: now})
		},
	})
}

func (s *dishService) ToggleLike(ctx context.Context, id string, userID string) (domain.ToggleResponse, error) {
	return s.toggle(ctx, id, userID, edge{
		column: columnLikeCount,
		has:    DishRepository.HasLike,
		remove: DishRepository.RemoveLike,
		count:  DishRepository.CountLikes,
		add: func(tx DishRepository, ctx context.Context, dishID, userID uuid.UUID, now time.Time) error {
			return tx.AddLike(ctx, &entities.DishLike{DishID: dishID, UserID: userID, CreatedAt: now})
		},
	})
}

// edge describes one user-dish relation whose row count is mirrored in a
// dish counter column.
type edge struct {
	column string
	has    func(DishRepository, context.Context, string, string) (bool, error)
	remove func(DishRepository, context.Context, string, string) error
	count  func(DishRepository, context.Context, string) (int64, error)
	add    func(tx DishRepository, ctx context.Context, dishID, userID uuid.UUID, now time.Time) error
}

// toggle flips the edge and rewrites the counter from the edge count in the
// same transaction. Badge sessions are left untouched.
func (s *dishService) toggle(ctx context.Context, id string, userID string, e edge) (domain.ToggleResponse, error) {
	dishUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.ToggleResponse{}, domain.ErrDishNotFound
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ToggleResponse{}, domain.ErrParseUUID
	}
	dishKey, userKey := dishUUID.String(), userUUID.String()

	now := s.now()
	var res domain.ToggleResponse
	err = s.dishRepository.Transaction(ctx, func(tx DishRepository) error {
		dish, err := tx.GetDishForUpdate(ctx, dishKey)
		if err != nil {
			return dishError(err)
		}

		active, err := e.has(tx, ctx, dishKey, userKey)
		if err != nil {
			return err
		}
		if active {
			err = e.remove(tx, ctx, dishKey, userKey)
		} else {
			if dish.IsArchived {
				return domain.ErrDishArchived
			}
			err = e.add(tx, ctx, dishUUID, userUUID, now)
		}
		if err != nil {
			return fmt.Errorf("toggle %s: %w", e.column, err)
		}

		count, err := e.count(tx, ctx, dishKey)
		if err != nil {
			return err
		}
		if err := tx.SetCounter(ctx, dishKey, e.column, count); err != nil {
			return err
		}

		res = domain.ToggleResponse{DishID: dishKey, Active: !active, Count: int(count)}
		return nil
	})
	if err != nil {
		return domain.ToggleResponse{}, err
	}
	return res, nil
}

func (s *dishService) GetSavedDishes(ctx context.Context, userID string) ([]domain.DishResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	dishes, err := s.dishRepository.GetSavedDishesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load saved dishes: %w", err)
	}
	return s.presentAll(dishes, nil, s.now()), nil
}

func (s *dishService) GetLikedDishes(ctx context.Context, userID string) ([]domain.DishResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	dishes, err := s.dishRepository.GetLikedDishesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load liked dishes: %w", err)
	}
	return s.presentAll(dishes, nil, s.now()), nil
}

// GetFeed ranks the catalog fresh on every call. Badges come from the
// viewer's frozen session, which is only recomputed on its first load or
// when reload is requested.
func (s *dishService) GetFeed(ctx context.Context, userID string, reload bool) ([]domain.DishResponse, error) {
	pool, err := s.dishRepository.GetActiveDishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	now := s.now()
	session, created := s.sessions.get(userID, now)
	if created || reload {
		session.Recompute(ranking.TriggerDataLoaded, pool, now)
	}
	return s.presentAll(ranking.Rank(pool, now), session, now), nil
}

func (s *dishService) SearchDishes(ctx context.Context, req domain.SearchDishesRequest, userID string) ([]domain.DishResponse, error) {
	cuisine, ok := ranking.ParseCuisine(req.Cuisine)
	if !ok {
		return nil, domain.ErrInvalidCuisine
	}
	mode, ok := ranking.ParseSortMode(req.Sort)
	if !ok {
		return nil, domain.ErrInvalidSortMode
	}

	results, err := lookup.Do(ctx, s.lookup, searchKey(userID), func(ctx context.Context) ([]*entities.Dish, error) {
		return s.dishRepository.SearchDishes(ctx, req.Query)
	})
	if err != nil {
		if errors.Is(err, lookup.ErrSuperseded) {
			return nil, err
		}
		return nil, fmt.Errorf("search dishes: %w", err)
	}
	pool, err := s.dishRepository.GetActiveDishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	now := s.now()
	session, _ := s.sessions.get(userID, now)
	session.Recompute(ranking.TriggerFilterChanged, pool, now)
	return s.presentAll(ranking.SearchRank(results, cuisine, mode, now), session, now), nil
}

func (s *dishService) GetNearbyDishes(ctx context.Context, req domain.NearbyDishesRequest, userID string) ([]domain.DishResponse, error) {
	if req.Latitude == nil || req.Longitude == nil ||
		*req.Latitude < -90 || *req.Latitude > 90 ||
		*req.Longitude < -180 || *req.Longitude > 180 || req.RadiusKm < 0 {
		return nil, domain.ErrInvalidCoordinate
	}

	pool, err := s.dishRepository.GetActiveDishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	seen := make(map[uuid.UUID]bool)
	var restaurants []*entities.Restaurant
	for _, d := range pool {
		if d.Restaurant != nil && !seen[d.Restaurant.ID] {
			seen[d.Restaurant.ID] = true
			restaurants = append(restaurants, d.Restaurant)
		}
	}

	now := s.now()
	session, _ := s.sessions.get(userID, now)
	session.Recompute(ranking.TriggerLocationChanged, pool, now)

	ranked := ranking.WithinRadius(ranking.NearbyRank(pool, restaurants, *req.Latitude, *req.Longitude), req.RadiusKm)
	res := make([]domain.DishResponse, 0, len(ranked))
	for _, n := range ranked {
		item := s.present(n.Dish, session, now)
		distance := n.DistanceKm
		item.DistanceKm = &distance
		res = append(res, item)
	}
	return res, nil
}

// SuggestDishes is keyed by viewer: a newer prefix from the same viewer
// supersedes the lookup still waiting or running. Searches use their own
// key, so a search never cancels a suggestion or the other way round.
func (s *dishService) SuggestDishes(ctx context.Context, prefix string, userID string) ([]domain.SuggestionResponse, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []domain.SuggestionResponse{}, nil
	}

	return lookup.Do(ctx, s.lookup, suggestKey(userID), func(ctx context.Context) ([]domain.SuggestionResponse, error) {
		dishes, err := s.dishRepository.SuggestDishes(ctx, prefix, suggestLimit)
		if err != nil {
			return nil, fmt.Errorf("suggest dishes: %w", err)
		}
		res := make([]domain.SuggestionResponse, 0, len(dishes))
		for _, d := range dishes {
			item := domain.SuggestionResponse{ID: d.ID.String(), Name: d.Name}
			if d.Restaurant != nil {
				item.RestaurantName = d.Restaurant.Name
			}
			res = append(res, item)
		}
		return res, nil
	})
}

func searchKey(userID string) string { return "search:" + userID }
func suggestKey(userID string) string { return "suggest:" + userID }

// authorize runs check before any transaction is opened and translates a
// denial into ErrUnauthorizedAccess.
func (s *dishService) authorize(ctx context.Context, id string, userID string, check func(context.Context, string, string) (bool, error)) (uuid.UUID, error) {
	ok, err := check(ctx, id, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, domain.ErrUnauthorizedAccess
	}
	return uuid.MustParse(userID), nil
}

func (s *dishService) present(d *entities.Dish, session *ranking.BadgeSession, now time.Time) domain.DishResponse {
	res := domain.NewDishResponse(d)
	if !d.IsArchived {
		res.Score = ranking.Score(d, now)
		if session != nil {
			res.Badge = string(session.Badge(d.ID))
		}
	}
	return res
}

func (s *dishService) presentAll(dishes []*entities.Dish, session *ranking.BadgeSession, now time.Time) []domain.DishResponse {
	res := make([]domain.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		res = append(res, s.present(d, session, now))
	}
	return res
}

func validateRating(rating *float64) error {
	if rating != nil && (*rating < 0 || *rating > 5) {
		return domain.ErrInvalidRating
	}
	return nil
}

func dishError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrDishNotFound
	}
	return err
}

func imageError(err error) error {
	if errors.Is(err, storage.ErrFileNotAllowed) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return fmt.Errorf("upload image: %w", err)
}
