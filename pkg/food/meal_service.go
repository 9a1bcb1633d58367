package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"Household-Food-Tracker/pkg/user"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MealService interface {
		AddMeal(ctx context.Context, req domain.AddMealRequest, userID string) (domain.MealResponse, error)
		UpdateMeal(ctx context.Context, id string, req domain.UpdateMealRequest, userID string) (domain.MealResponse, error)
		DeleteMeal(ctx context.Context, id string, userID string) error
		GetMealByID(ctx context.Context, id string, userID string) (domain.MealResponse, error)
		GetMeals(ctx context.Context, userID string, from, to *time.Time) ([]domain.MealResponse, error)
		DuplicateMeal(ctx context.Context, id string, req domain.DuplicateMealRequest, userID string) (domain.MealResponse, error)
	}

	mealService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
	}
)

func NewMealService(foodRepository FoodRepository, userRepository user.UserRepository) MealService {
	return &mealService{
		foodRepository: foodRepository,
		userRepository: userRepository,
	}
}

func (s *mealService) memberOf(ctx context.Context, userID string) (*entities.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	u, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if u.HouseholdID == nil {
		return nil, domain.ErrNotHouseholdMember
	}
	return u, nil
}

func parseMealTime(raw string) (string, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", domain.ErrInvalidTime
}

func (s *mealService) AddMeal(ctx context.Context, req domain.AddMealRequest, userID string) (domain.MealResponse, error) {
	member, err := s.memberOf(ctx, userID)
	if err != nil {
		return domain.MealResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.MealResponse{}, domain.ErrInvalidDate
	}
	mealTime, err := parseMealTime(req.Time)
	if err != nil {
		return domain.MealResponse{}, err
	}

	var mealID uuid.UUID
	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		meal := &entities.Meal{
			ID:          uuid.New(),
			Name:        entities.MealName(req.Name),
			Date:        date,
			Time:        mealTime,
			HouseholdID: *member.HouseholdID,
			UserID:      member.ID,
		}
		if err := repo.AddMeal(ctx, meal); err != nil {
			return err
		}
		mealID = meal.ID

		if err := applyPortionEdits(ctx, repo, meal, req.Portions); err != nil {
			return err
		}
		return recomputeMeal(ctx, repo, meal.ID)
	})
	if err != nil {
		return domain.MealResponse{}, err
	}
	return s.mealResponse(ctx, s.foodRepository, mealID)
}

func (s *mealService) UpdateMeal(ctx context.Context, id string, req domain.UpdateMealRequest, userID string) (domain.MealResponse, error) {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return domain.MealResponse{}, domain.ErrParseUUID
	}
	member, err := s.memberOf(ctx, userID)
	if err != nil {
		return domain.MealResponse{}, err
	}

	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		meal, err := repo.GetMealByID(ctx, mealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMealNotFound
			}
			return err
		}
		if meal.HouseholdID != *member.HouseholdID {
			return domain.ErrUserNotAllowed
		}

		if req.Name != "" {
			meal.Name = entities.MealName(req.Name)
		}
		if req.Date != "" {
			date, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				return domain.ErrInvalidDate
			}
			meal.Date = date
		}
		if req.Time != "" {
			mealTime, err := parseMealTime(req.Time)
			if err != nil {
				return err
			}
			meal.Time = mealTime
		}
		if err := repo.UpdateMeal(ctx, meal); err != nil {
			return err
		}

		if err := applyPortionEdits(ctx, repo, meal, req.Portions); err != nil {
			return err
		}
		return recomputeMeal(ctx, repo, meal.ID)
	})
	if err != nil {
		return domain.MealResponse{}, err
	}
	return s.mealResponse(ctx, s.foodRepository, mealID)
}

// applyPortionEdits applies a whole batch of portion adds/edits/deletes
// atomically. Portions of dishes are conservation-checked: each row on
// its own, then all rows drawing on the same dish jointly. Ingredients
// are reference foodstuffs and are never used up.
func applyPortionEdits(ctx context.Context, repo FoodRepository, meal *entities.Meal, edits []domain.PortionEdit) error {
	if len(edits) == 0 {
		return nil
	}

	type parsedEdit struct {
		domain.PortionEdit
		portionID    uuid.UUID
		comestibleID uuid.UUID
		kind         entities.ComestibleKind
		existing     *entities.Portion
	}

	parsed := make([]parsedEdit, 0, len(edits))
	for _, edit := range edits {
		pe := parsedEdit{PortionEdit: edit, kind: entities.ComestibleKind(edit.ComestibleKind)}

		comestibleID, err := uuid.Parse(edit.ComestibleID)
		if err != nil {
			return domain.ErrParseUUID
		}
		pe.comestibleID = comestibleID

		if edit.ID != "" {
			portionID, err := uuid.Parse(edit.ID)
			if err != nil {
				return domain.ErrParseUUID
			}
			existing, err := repo.GetPortionByID(ctx, portionID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrPortionNotFound
				}
				return err
			}
			if existing.MealID != meal.ID {
				return domain.ErrUserNotAllowed
			}
			pe.portionID = portionID
			pe.existing = existing
		}

		if !edit.Delete {
			if err := ValidatePositiveOrZero(edit.Quantity); err != nil {
				return err
			}
		}
		parsed = append(parsed, pe)
	}

	type draw struct {
		saved     float64
		requested float64
	}
	draws := map[uuid.UUID]*draw{}
	for _, pe := range parsed {
		if pe.kind != entities.KindDish {
			continue
		}
		d, ok := draws[pe.comestibleID]
		if !ok {
			d = &draw{}
			draws[pe.comestibleID] = d
		}
		if pe.existing != nil {
			d.saved += pe.existing.Quantity
		}
		if !pe.Delete {
			d.requested += pe.Quantity
		}
	}
	for dishID, d := range draws {
		dish, err := repo.GetDishForUpdate(ctx, dishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrComestibleNotFound
			}
			return err
		}
		remaining, err := RemainingQuantity(ctx, repo, dish)
		if err != nil {
			return err
		}
		for _, pe := range parsed {
			if pe.kind != entities.KindDish || pe.comestibleID != dishID || pe.Delete {
				continue
			}
			saved := 0.0
			if pe.existing != nil {
				saved = pe.existing.Quantity
			}
			if err := checkSingleDraw(dish, remaining, saved, pe.Quantity); err != nil {
				return err
			}
		}
		if err := checkBatchDraw(dish, remaining, d.saved, d.requested); err != nil {
			return err
		}
	}

	for _, pe := range parsed {
		if pe.Delete {
			if pe.existing == nil {
				return domain.ErrPortionNotFound
			}
			if err := repo.DeletePortion(ctx, pe.portionID); err != nil {
				return err
			}
			continue
		}

		comestible, err := repo.GetComestible(ctx, pe.kind, pe.comestibleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrComestibleNotFound
			}
			return err
		}
		calories, err := DeriveCalories(pe.Quantity, comestible)
		if err != nil {
			return err
		}

		if pe.existing != nil {
			pe.existing.ComestibleKind = pe.kind
			pe.existing.ComestibleID = pe.comestibleID
			pe.existing.Quantity = pe.Quantity
			pe.existing.Calories = calories
			if err := repo.UpdatePortion(ctx, pe.existing); err != nil {
				return err
			}
			continue
		}

		portion := &entities.Portion{
			ID:             uuid.New(),
			MealID:         meal.ID,
			ComestibleKind: pe.kind,
			ComestibleID:   pe.comestibleID,
			Quantity:       pe.Quantity,
			Calories:       calories,
		}
		if err := repo.AddPortion(ctx, portion); err != nil {
			return err
		}
	}
	return nil
}

func (s *mealService) DeleteMeal(ctx context.Context, id string, userID string) error {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}
	member, err := s.memberOf(ctx, userID)
	if err != nil {
		return err
	}

	return s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		meal, err := repo.GetMealByID(ctx, mealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMealNotFound
			}
			return err
		}
		if meal.HouseholdID != *member.HouseholdID {
			return domain.ErrUserNotAllowed
		}

		for _, portion := range meal.Portions {
			if err := repo.DeletePortion(ctx, portion.ID); err != nil {
				return err
			}
		}
		return repo.DeleteMeal(ctx, mealID)
	})
}

func (s *mealService) DuplicateMeal(ctx context.Context, id string, req domain.DuplicateMealRequest, userID string) (domain.MealResponse, error) {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return domain.MealResponse{}, domain.ErrParseUUID
	}
	member, err := s.memberOf(ctx, userID)
	if err != nil {
		return domain.MealResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.MealResponse{}, domain.ErrInvalidDate
	}

	var newID uuid.UUID
	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		source, err := repo.GetMealByID(ctx, mealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMealNotFound
			}
			return err
		}
		if source.HouseholdID != *member.HouseholdID {
			return domain.ErrUserNotAllowed
		}

		// portions are copied as-is; the copy is not re-checked
		// against the dishes' remaining quantities
		duplicate := &entities.Meal{
			ID:          uuid.New(),
			Name:        source.Name,
			Date:        date,
			Time:        source.Time,
			HouseholdID: source.HouseholdID,
			UserID:      member.ID,
		}
		if err := repo.AddMeal(ctx, duplicate); err != nil {
			return err
		}
		newID = duplicate.ID

		for _, portion := range source.Portions {
			copied := &entities.Portion{
				ID:             uuid.New(),
				MealID:         duplicate.ID,
				ComestibleKind: portion.ComestibleKind,
				ComestibleID:   portion.ComestibleID,
				Quantity:       portion.Quantity,
				Calories:       portion.Calories,
			}
			if err := repo.AddPortion(ctx, copied); err != nil {
				return err
			}
		}
		return recomputeMeal(ctx, repo, duplicate.ID)
	})
	if err != nil {
		return domain.MealResponse{}, err
	}
	return s.mealResponse(ctx, s.foodRepository, newID)
}

func (s *mealService) GetMealByID(ctx context.Context, id string, userID string) (domain.MealResponse, error) {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return domain.MealResponse{}, domain.ErrParseUUID
	}
	member, err := s.memberOf(ctx, userID)
	if err != nil {
		return domain.MealResponse{}, err
	}

	meal, err := s.foodRepository.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MealResponse{}, domain.ErrMealNotFound
		}
		return domain.MealResponse{}, err
	}
	if meal.HouseholdID != *member.HouseholdID {
		return domain.MealResponse{}, domain.ErrUserNotAllowed
	}
	return s.mealResponse(ctx, s.foodRepository, mealID)
}

func (s *mealService) GetMeals(ctx context.Context, userID string, from, to *time.Time) ([]domain.MealResponse, error) {
	member, err := s.memberOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	meals, err := s.foodRepository.GetMeals(ctx, *member.HouseholdID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MealResponse, 0, len(meals))
	for _, meal := range meals {
		res, err := s.mealResponseFrom(ctx, s.foodRepository, meal)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (s *mealService) mealResponse(ctx context.Context, repo FoodRepository, mealID uuid.UUID) (domain.MealResponse, error) {
	meal, err := repo.GetMealByID(ctx, mealID)
	if err != nil {
		return domain.MealResponse{}, err
	}
	return s.mealResponseFrom(ctx, repo, meal)
}

func (s *mealService) mealResponseFrom(ctx context.Context, repo FoodRepository, meal *entities.Meal) (domain.MealResponse, error) {
	res := domain.MealResponse{
		ID:          meal.ID.String(),
		Name:        string(meal.Name),
		Date:        meal.Date.Format("2006-01-02"),
		Time:        meal.Time,
		HouseholdID: meal.HouseholdID.String(),
		UserID:      meal.UserID.String(),
		Calories:    meal.Calories,
	}
	for _, portion := range meal.Portions {
		comestible, err := repo.GetComestible(ctx, portion.ComestibleKind, portion.ComestibleID)
		if err != nil {
			return domain.MealResponse{}, err
		}
		res.Portions = append(res.Portions, domain.PortionResponse{
			ID:             portion.ID.String(),
			ComestibleKind: string(portion.ComestibleKind),
			ComestibleID:   portion.ComestibleID.String(),
			ComestibleName: comestible.Label,
			Quantity:       portion.Quantity,
			Calories:       portion.Calories,
		})
	}
	return res, nil
}
