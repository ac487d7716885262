package restaurant

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/entities"
	"Dish-Discovery/internal/utils/mailing"
	"Dish-Discovery/pkg/ranking"
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type (
	RestaurantService interface {
		GetRestaurant(ctx context.Context, id string) (domain.RestaurantResponse, error)
		GetClaimState(ctx context.Context, id string) (domain.ClaimStateResponse, error)
		SubmitClaim(ctx context.Context, id string, req domain.SubmitClaimRequest, userID string) (domain.ClaimStateResponse, error)
		UpdateClaimState(ctx context.Context, id string, req domain.UpdateClaimStateRequest) (domain.ClaimStateResponse, error)
		SetSignatureDish(ctx context.Context, id string, req domain.SetSignatureDishRequest, userID string) error
	}

	restaurantService struct {
		restaurantRepository RestaurantRepository
		dishReader           DishReader
		mailer               mailing.Mailer
		now                  func() time.Time
	}
)

func NewRestaurantService(restaurantRepository RestaurantRepository, dishReader DishReader, mailer mailing.Mailer, now func() time.Time) RestaurantService {
	if now == nil {
		now = time.Now
	}
	return &restaurantService{
		restaurantRepository: restaurantRepository,
		dishReader:           dishReader,
		mailer:               mailer,
		now:                  now,
	}
}

func (s *restaurantService) GetRestaurant(ctx context.Context, id string) (domain.RestaurantResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RestaurantResponse{}, domain.ErrRestaurantNotFound
	}
	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, id)
	if err != nil {
		return domain.RestaurantResponse{}, restaurantError(err)
	}

	pool, err := s.dishReader.GetActiveDishes(ctx)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}

	var own []*entities.Dish
	for _, d := range pool {
		if d.RestaurantID == restaurant.ID {
			d.Restaurant = restaurant
			own = append(own, d)
		}
	}

	now := s.now()
	badges := ranking.ClassifyAll(pool, now)

	res := domain.NewRestaurantResponse(restaurant)
	for _, d := range ranking.Rank(own, now) {
		item := domain.NewDishResponse(d)
		item.Badge = string(badges[d.ID])
		item.Score = ranking.Score(d, now)
		res.Dishes = append(res.Dishes, item)
	}
	if signature := ranking.SignatureDish(restaurant, own); signature != nil {
		item := domain.NewDishResponse(signature)
		item.Badge = string(badges[signature.ID])
		item.Score = ranking.Score(signature, now)
		res.SignatureDish = &item
	}
	return res, nil
}

func (s *restaurantService) GetClaimState(ctx context.Context, id string) (domain.ClaimStateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ClaimStateResponse{}, domain.ErrRestaurantNotFound
	}
	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, id)
	if err != nil {
		return domain.ClaimStateResponse{}, restaurantError(err)
	}
	return domain.NewClaimStateResponse(restaurant), nil
}

func (s *restaurantService) SubmitClaim(ctx context.Context, id string, req domain.SubmitClaimRequest, userID string) (domain.ClaimStateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ClaimStateResponse{}, domain.ErrRestaurantNotFound
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ClaimStateResponse{}, domain.ErrParseUUID
	}

	now := s.now()
	var claimed *entities.Restaurant
	err = s.restaurantRepository.Transaction(ctx, func(tx RestaurantRepository) error {
		restaurant, err := tx.GetRestaurantForUpdate(ctx, id)
		if err != nil {
			return restaurantError(err)
		}
		if !CanSubmitClaim(restaurant.ClaimStatus) {
			return fmt.Errorf("%w: cannot submit a claim while %s", domain.ErrInvalidStateTransition, restaurant.ClaimStatus)
		}

		affected, err := tx.UpdateClaimFields(ctx, id, []entities.ClaimStatus{restaurant.ClaimStatus}, map[string]interface{}{
			"claim_status":        string(entities.ClaimStatusPending),
			"claimed_by_user_id":  userUUID,
			"claim_contact_email": req.ContactEmail,
			"claim_requested_at":  now,
			"updated_at":          now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: claim changed concurrently", domain.ErrInvalidStateTransition)
		}

		restaurant.ClaimStatus = entities.ClaimStatusPending
		restaurant.ClaimedByUserID = &userUUID
		restaurant.ClaimContactEmail = req.ContactEmail
		restaurant.ClaimRequestedAt = &now
		restaurant.UpdatedAt = now
		claimed = restaurant
		return nil
	})
	if err != nil {
		return domain.ClaimStateResponse{}, err
	}

	log.Infof("claim submitted for restaurant %s by user %s", id, userID)
	return domain.NewClaimStateResponse(claimed), nil
}

func (s *restaurantService) UpdateClaimState(ctx context.Context, id string, req domain.UpdateClaimStateRequest) (domain.ClaimStateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ClaimStateResponse{}, domain.ErrRestaurantNotFound
	}

	now := s.now()
	var reviewed *entities.Restaurant
	err := s.restaurantRepository.Transaction(ctx, func(tx RestaurantRepository) error {
		restaurant, err := tx.GetRestaurantForUpdate(ctx, id)
		if err != nil {
			return restaurantError(err)
		}
		target, err := ParseReviewTarget(req.ClaimStatus)
		if err != nil {
			return err
		}
		if !CanReviewClaim(restaurant.ClaimStatus) {
			return fmt.Errorf("%w: cannot review a claim while %s", domain.ErrInvalidStateTransition, restaurant.ClaimStatus)
		}

		ownership := OwnershipFor(target)
		fields := map[string]interface{}{
			"claim_status":      string(target),
			"ownership_type":    string(ownership),
			"claim_reviewed_at": now,
			"updated_at":        now,
		}
		if target == entities.ClaimStatusVerified && restaurant.ClaimedByUserID != nil {
			fields["owner_user_id"] = *restaurant.ClaimedByUserID
		}

		affected, err := tx.UpdateClaimFields(ctx, id, reviewFrom, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: claim changed concurrently", domain.ErrInvalidStateTransition)
		}

		restaurant.ClaimStatus = target
		restaurant.OwnershipType = ownership
		restaurant.ClaimReviewedAt = &now
		restaurant.UpdatedAt = now
		if target == entities.ClaimStatusVerified && restaurant.ClaimedByUserID != nil {
			owner := *restaurant.ClaimedByUserID
			restaurant.OwnerUserID = &owner
		}
		reviewed = restaurant
		return nil
	})
	if err != nil {
		return domain.ClaimStateResponse{}, err
	}

	log.Infof("claim for restaurant %s reviewed: %s", id, reviewed.ClaimStatus)
	s.notifyClaimDecision(reviewed)
	return domain.NewClaimStateResponse(reviewed), nil
}

func (s *restaurantService) SetSignatureDish(ctx context.Context, id string, req domain.SetSignatureDishRequest, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrRestaurantNotFound
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, id)
	if err != nil {
		return restaurantError(err)
	}
	if restaurant.ClaimStatus != entities.ClaimStatusVerified ||
		!(sameUser(restaurant.OwnerUserID, userUUID) || sameUser(restaurant.ClaimedByUserID, userUUID)) {
		return domain.ErrUnauthorizedAccess
	}

	dish, err := s.dishReader.GetDishByID(ctx, req.DishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDishNotFound
		}
		return err
	}
	if dish.RestaurantID != restaurant.ID {
		return domain.ErrDishNotInRestaurant
	}
	if dish.IsArchived {
		return domain.ErrDishArchived
	}

	return s.restaurantRepository.UpdateSignatureDish(ctx, id, dish.ID, s.now())
}

func (s *restaurantService) notifyClaimDecision(restaurant *entities.Restaurant) {
	if s.mailer == nil || !s.mailer.Enabled() || restaurant.ClaimContactEmail == "" {
		return
	}
	if err := s.mailer.SendClaimDecision(restaurant.ClaimContactEmail, restaurant.Name, string(restaurant.ClaimStatus)); err != nil {
		log.Warnf("failed to send claim decision for restaurant %s: %v", restaurant.ID, err)
	}
}

func restaurantError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRestaurantNotFound
	}
	return err
}
