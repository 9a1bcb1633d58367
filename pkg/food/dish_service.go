package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"Household-Food-Tracker/internal/utils/storage"
	"Household-Food-Tracker/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DishService interface {
		AddDish(ctx context.Context, req domain.AddDishRequest, userID string) (domain.DishResponse, error)
		UpdateDish(ctx context.Context, id string, req domain.UpdateDishRequest, userID string) (domain.DishResponse, error)
		DeleteDish(ctx context.Context, id string, userID string) error
		GetDishByID(ctx context.Context, id string, userID string) (domain.DishResponse, error)
		GetDishes(ctx context.Context, userID string, page, limit int) ([]domain.DishResponse, int64, error)
		MultiplyDish(ctx context.Context, id string, req domain.MultiplyDishRequest, userID string) (domain.DishResponse, error)
		DuplicateDish(ctx context.Context, id string, req domain.DuplicateDishRequest, userID string) (domain.DishResponse, error)
		GetRemainingQuantity(ctx context.Context, id string, userID string) (domain.RemainingQuantityResponse, error)
		UploadDishImage(ctx context.Context, req domain.UploadDishImageRequest, userID string) error
	}

	dishService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
		s3             storage.AwsS3
	}
)

func NewDishService(foodRepository FoodRepository, userRepository user.UserRepository, s3 storage.AwsS3) DishService {
	return &dishService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		s3:             s3,
	}
}

func (s *dishService) householdOf(ctx context.Context, userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	u, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return uuid.Nil, domain.ErrUserNotFound
	}
	if u.HouseholdID == nil {
		return uuid.Nil, domain.ErrNotHouseholdMember
	}
	return *u.HouseholdID, nil
}

func (s *dishService) AddDish(ctx context.Context, req domain.AddDishRequest, userID string) (domain.DishResponse, error) {
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return domain.DishResponse{}, err
	}

	dateCooked, err := time.Parse("2006-01-02", req.DateCooked)
	if err != nil {
		return domain.DishResponse{}, domain.ErrInvalidDate
	}
	if err := ValidatePositive(req.Quantity); err != nil {
		return domain.DishResponse{}, err
	}

	// a new dish starts at zero calories; it picks up its first real
	// total when amounts are attached via UpdateDish
	dish := &entities.Dish{
		ID:          uuid.New(),
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        entities.Unit(req.Unit),
		DateCooked:  dateCooked,
		HouseholdID: householdID,
		RecipeURL:   req.RecipeURL,
	}
	if err := s.foodRepository.AddDish(ctx, dish); err != nil {
		return domain.DishResponse{}, err
	}

	if len(req.CookIDs) > 0 {
		if err := s.replaceCooks(ctx, dish, req.CookIDs); err != nil {
			return domain.DishResponse{}, err
		}
	}
	return s.dishResponse(ctx, s.foodRepository, dish.ID)
}

func (s *dishService) replaceCooks(ctx context.Context, dish *entities.Dish, cookIDs []string) error {
	ids := make([]uuid.UUID, 0, len(cookIDs))
	for _, raw := range cookIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.ErrParseUUID
		}
		ids = append(ids, id)
	}
	cooks, err := s.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	return s.foodRepository.ReplaceDishCooks(ctx, dish, cooks)
}

func (s *dishService) UpdateDish(ctx context.Context, id string, req domain.UpdateDishRequest, userID string) (domain.DishResponse, error) {
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.DishResponse{}, domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return domain.DishResponse{}, err
	}

	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		dish, err := repo.GetDishForUpdate(ctx, dishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDishNotFound
			}
			return err
		}
		if dish.HouseholdID != householdID {
			return domain.ErrUserNotAllowed
		}

		if req.Name != "" {
			dish.Name = req.Name
		}
		if req.Quantity != nil {
			if err := ValidatePositive(*req.Quantity); err != nil {
				return err
			}
			dish.Quantity = *req.Quantity
		}
		if req.Unit != "" {
			dish.Unit = entities.Unit(req.Unit)
		}
		if req.RecipeURL != "" {
			dish.RecipeURL = req.RecipeURL
		}
		if req.DateCooked != "" {
			dateCooked, err := time.Parse("2006-01-02", req.DateCooked)
			if err != nil {
				return domain.ErrInvalidDate
			}
			dish.DateCooked = dateCooked
		}
		if err := repo.UpdateDish(ctx, dish); err != nil {
			return err
		}

		if req.CookIDs != nil {
			if err := s.replaceCooks(ctx, dish, req.CookIDs); err != nil {
				return err
			}
		}

		if err := applyAmountEdits(ctx, repo, dish, req.Amounts); err != nil {
			return err
		}

		// re-sum this dish and push the change to everything that
		// contains or eats it
		return recomputeDish(ctx, repo, dish.ID)
	})
	if err != nil {
		return domain.DishResponse{}, err
	}
	return s.dishResponse(ctx, s.foodRepository, dishID)
}

// applyAmountEdits applies a whole batch of amount adds/edits/deletes
// atomically: any invalid row fails the batch. Rows that draw on a
// dish are conservation-checked per row and jointly per dish.
func applyAmountEdits(ctx context.Context, repo FoodRepository, dish *entities.Dish, edits []domain.AmountEdit) error {
	if len(edits) == 0 {
		return nil
	}

	type parsedEdit struct {
		domain.AmountEdit
		amountID    uuid.UUID
		containedID uuid.UUID
		kind        entities.ComestibleKind
		existing    *entities.Amount
	}

	parsed := make([]parsedEdit, 0, len(edits))
	for _, edit := range edits {
		pe := parsedEdit{AmountEdit: edit, kind: entities.ComestibleKind(edit.ContainedKind)}

		containedID, err := uuid.Parse(edit.ContainedID)
		if err != nil {
			return domain.ErrParseUUID
		}
		pe.containedID = containedID

		if edit.ID != "" {
			amountID, err := uuid.Parse(edit.ID)
			if err != nil {
				return domain.ErrParseUUID
			}
			existing, err := repo.GetAmountByID(ctx, amountID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrAmountNotFound
				}
				return err
			}
			if existing.ContainingDishID != dish.ID {
				return domain.ErrUserNotAllowed
			}
			pe.amountID = amountID
			pe.existing = existing
		}

		if !edit.Delete {
			if err := ValidatePositiveOrZero(edit.Quantity); err != nil {
				return err
			}
			if pe.kind == entities.KindDish {
				if pe.containedID == dish.ID {
					return domain.ErrSelfContainment
				}
				cycle, err := wouldCreateCycle(ctx, repo, dish.ID, pe.containedID)
				if err != nil {
					return err
				}
				if cycle {
					return domain.ErrContainmentCycle
				}
			}
		}
		parsed = append(parsed, pe)
	}

	// conservation check on every contained dish drawn on by the batch
	type draw struct {
		saved     float64
		requested float64
	}
	draws := map[uuid.UUID]*draw{}
	for _, pe := range parsed {
		if pe.kind != entities.KindDish {
			continue
		}
		d, ok := draws[pe.containedID]
		if !ok {
			d = &draw{}
			draws[pe.containedID] = d
		}
		if pe.existing != nil {
			d.saved += pe.existing.Quantity
		}
		if !pe.Delete {
			d.requested += pe.Quantity
		}
	}
	for containedID, d := range draws {
		contained, err := repo.GetDishForUpdate(ctx, containedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrComestibleNotFound
			}
			return err
		}
		remaining, err := RemainingQuantity(ctx, repo, contained)
		if err != nil {
			return err
		}
		for _, pe := range parsed {
			if pe.kind != entities.KindDish || pe.containedID != containedID || pe.Delete {
				continue
			}
			saved := 0.0
			if pe.existing != nil {
				saved = pe.existing.Quantity
			}
			if err := checkSingleDraw(contained, remaining, saved, pe.Quantity); err != nil {
				return err
			}
		}
		if err := checkBatchDraw(contained, remaining, d.saved, d.requested); err != nil {
			return err
		}
	}

	for _, pe := range parsed {
		if pe.Delete {
			if pe.existing == nil {
				return domain.ErrAmountNotFound
			}
			if err := repo.DeleteAmount(ctx, pe.amountID); err != nil {
				return err
			}
			continue
		}

		comestible, err := repo.GetComestible(ctx, pe.kind, pe.containedID)
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
			pe.existing.ContainedKind = pe.kind
			pe.existing.ContainedID = pe.containedID
			pe.existing.Quantity = pe.Quantity
			pe.existing.Calories = calories
			if err := repo.UpdateAmount(ctx, pe.existing); err != nil {
				return err
			}
			continue
		}

		amount := &entities.Amount{
			ID:               uuid.New(),
			ContainingDishID: dish.ID,
			ContainedKind:    pe.kind,
			ContainedID:      pe.containedID,
			Quantity:         pe.Quantity,
			Calories:         calories,
		}
		if err := repo.AddAmount(ctx, amount); err != nil {
			return err
		}
	}
	return nil
}

func (s *dishService) DeleteDish(ctx context.Context, id string, userID string) error {
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return err
	}

	return s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		dish, err := repo.GetDishForUpdate(ctx, dishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDishNotFound
			}
			return err
		}
		if dish.HouseholdID != householdID {
			return domain.ErrUserNotAllowed
		}

		// the dish's own recipe rows
		own, err := repo.GetDishAmounts(ctx, dishID)
		if err != nil {
			return err
		}
		for _, amount := range own {
			if err := repo.DeleteAmount(ctx, amount.ID); err != nil {
				return err
			}
		}

		// rows where other dishes contain this one
		containing, err := repo.GetAmountsContaining(ctx, entities.KindDish, dishID)
		if err != nil {
			return err
		}
		parentIDs := make([]uuid.UUID, 0, len(containing))
		seenParent := map[uuid.UUID]bool{}
		for _, amount := range containing {
			if err := repo.DeleteAmount(ctx, amount.ID); err != nil {
				return err
			}
			if !seenParent[amount.ContainingDishID] {
				seenParent[amount.ContainingDishID] = true
				parentIDs = append(parentIDs, amount.ContainingDishID)
			}
		}

		// rows where meals ate this dish
		portions, err := repo.GetPortionsOf(ctx, entities.KindDish, dishID)
		if err != nil {
			return err
		}
		mealIDs := make([]uuid.UUID, 0, len(portions))
		seenMeal := map[uuid.UUID]bool{}
		for _, portion := range portions {
			if err := repo.DeletePortion(ctx, portion.ID); err != nil {
				return err
			}
			if !seenMeal[portion.MealID] {
				seenMeal[portion.MealID] = true
				mealIDs = append(mealIDs, portion.MealID)
			}
		}

		if err := repo.DeleteDish(ctx, dishID); err != nil {
			return err
		}

		for _, parentID := range parentIDs {
			if err := recomputeDish(ctx, repo, parentID); err != nil {
				return err
			}
		}
		for _, mealID := range mealIDs {
			if err := recomputeMeal(ctx, repo, mealID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *dishService) MultiplyDish(ctx context.Context, id string, req domain.MultiplyDishRequest, userID string) (domain.DishResponse, error) {
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.DishResponse{}, domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return domain.DishResponse{}, err
	}

	if req.Factor <= 0 {
		return domain.DishResponse{}, domain.ErrInvalidFactor
	}
	factor := req.Factor
	switch req.Operation {
	case "multiply":
	case "divide":
		factor = 1 / factor
	default:
		return domain.DishResponse{}, domain.ErrInvalidOperation
	}

	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		dish, err := repo.GetDishForUpdate(ctx, dishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDishNotFound
			}
			return err
		}
		if dish.HouseholdID != householdID {
			return domain.ErrUserNotAllowed
		}

		dish.Quantity *= factor
		if err := repo.UpdateDish(ctx, dish); err != nil {
			return err
		}

		amounts, err := repo.GetDishAmounts(ctx, dishID)
		if err != nil {
			return err
		}
		for _, amount := range amounts {
			amount.Quantity *= factor
			comestible, err := repo.GetComestible(ctx, amount.ContainedKind, amount.ContainedID)
			if err != nil {
				return err
			}
			amount.Calories, err = DeriveCalories(amount.Quantity, comestible)
			if err != nil {
				return err
			}
			if err := repo.UpdateAmount(ctx, amount); err != nil {
				return err
			}
		}
		return recomputeDish(ctx, repo, dishID)
	})
	if err != nil {
		return domain.DishResponse{}, err
	}
	return s.dishResponse(ctx, s.foodRepository, dishID)
}

func (s *dishService) DuplicateDish(ctx context.Context, id string, req domain.DuplicateDishRequest, userID string) (domain.DishResponse, error) {
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.DishResponse{}, domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return domain.DishResponse{}, err
	}

	dateCooked, err := time.Parse("2006-01-02", req.DateCooked)
	if err != nil {
		return domain.DishResponse{}, domain.ErrInvalidDate
	}

	var newID uuid.UUID
	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		source, err := repo.GetDishByID(ctx, dishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDishNotFound
			}
			return err
		}
		if source.HouseholdID != householdID {
			return domain.ErrUserNotAllowed
		}

		// cooks are deliberately not copied; the duplicate may be
		// cooked by someone else
		duplicate := &entities.Dish{
			ID:          uuid.New(),
			Name:        source.Name,
			Quantity:    source.Quantity,
			Unit:        source.Unit,
			DateCooked:  dateCooked,
			HouseholdID: source.HouseholdID,
			RecipeURL:   source.RecipeURL,
		}
		if err := repo.AddDish(ctx, duplicate); err != nil {
			return err
		}
		newID = duplicate.ID

		for _, amount := range source.Amounts {
			copied := &entities.Amount{
				ID:               uuid.New(),
				ContainingDishID: duplicate.ID,
				ContainedKind:    amount.ContainedKind,
				ContainedID:      amount.ContainedID,
				Quantity:         amount.Quantity,
				Calories:         amount.Calories,
			}
			if err := repo.AddAmount(ctx, copied); err != nil {
				return err
			}
		}
		return recomputeDish(ctx, repo, duplicate.ID)
	})
	if err != nil {
		return domain.DishResponse{}, err
	}
	return s.dishResponse(ctx, s.foodRepository, newID)
}

func (s *dishService) GetDishByID(ctx context.Context, id string, userID string) (domain.DishResponse, error) {
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.DishResponse{}, domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return domain.DishResponse{}, err
	}

	dish, err := s.foodRepository.GetDishByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DishResponse{}, domain.ErrDishNotFound
		}
		return domain.DishResponse{}, err
	}
	if dish.HouseholdID != householdID {
		return domain.DishResponse{}, domain.ErrUserNotAllowed
	}
	return s.dishResponse(ctx, s.foodRepository, dishID)
}

func (s *dishService) GetDishes(ctx context.Context, userID string, page, limit int) ([]domain.DishResponse, int64, error) {
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	dishes, count, err := s.foodRepository.GetDishes(ctx, householdID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		remaining, err := RemainingQuantity(ctx, s.foodRepository, dish)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, domain.DishResponse{
			ID:                dish.ID.String(),
			Name:              dish.Name,
			Quantity:          dish.Quantity,
			Unit:              string(dish.Unit),
			DateCooked:        dish.DateCooked.Format("2006-01-02"),
			HouseholdID:       dish.HouseholdID.String(),
			RecipeURL:         dish.RecipeURL,
			Calories:          dish.Calories,
			Cooks:             dish.PrettyCooks(),
			RemainingQuantity: remaining,
		})
	}
	return out, count, nil
}

func (s *dishService) GetRemainingQuantity(ctx context.Context, id string, userID string) (domain.RemainingQuantityResponse, error) {
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.RemainingQuantityResponse{}, domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return domain.RemainingQuantityResponse{}, err
	}

	dish, err := s.foodRepository.GetDishByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RemainingQuantityResponse{}, domain.ErrDishNotFound
		}
		return domain.RemainingQuantityResponse{}, err
	}
	if dish.HouseholdID != householdID {
		return domain.RemainingQuantityResponse{}, domain.ErrUserNotAllowed
	}

	remaining, err := RemainingQuantity(ctx, s.foodRepository, dish)
	if err != nil {
		return domain.RemainingQuantityResponse{}, err
	}
	return domain.RemainingQuantityResponse{
		DishID:            dish.ID.String(),
		RemainingQuantity: remaining,
		Unit:              string(dish.Unit),
	}, nil
}

func (s *dishService) UploadDishImage(ctx context.Context, req domain.UploadDishImageRequest, userID string) error {
	dishID, err := uuid.Parse(req.DishID)
	if err != nil {
		return domain.ErrParseUUID
	}
	householdID, err := s.householdOf(ctx, userID)
	if err != nil {
		return err
	}

	dish, err := s.foodRepository.GetDishByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDishNotFound
		}
		return err
	}
	if dish.HouseholdID != householdID {
		return domain.ErrUserNotAllowed
	}

	fileName := fmt.Sprintf("dish-%s", dish.ID)
	var objectKey string
	if dish.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(dish.ImageURL)
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "dishes", storage.AllowImage...)
	}
	if err != nil {
		return err
	}

	dish.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.foodRepository.UpdateDish(ctx, dish)
}

func (s *dishService) dishResponse(ctx context.Context, repo FoodRepository, dishID uuid.UUID) (domain.DishResponse, error) {
	dish, err := repo.GetDishByID(ctx, dishID)
	if err != nil {
		return domain.DishResponse{}, err
	}

	remaining, err := RemainingQuantity(ctx, repo, dish)
	if err != nil {
		return domain.DishResponse{}, err
	}

	res := domain.DishResponse{
		ID:                dish.ID.String(),
		Name:              dish.Name,
		Quantity:          dish.Quantity,
		Unit:              string(dish.Unit),
		DateCooked:        dish.DateCooked.Format("2006-01-02"),
		HouseholdID:       dish.HouseholdID.String(),
		RecipeURL:         dish.RecipeURL,
		Calories:          dish.Calories,
		Cooks:             dish.PrettyCooks(),
		RemainingQuantity: remaining,
	}
	for _, amount := range dish.Amounts {
		comestible, err := repo.GetComestible(ctx, amount.ContainedKind, amount.ContainedID)
		if err != nil {
			return domain.DishResponse{}, err
		}
		res.Amounts = append(res.Amounts, domain.AmountResponse{
			ID:            amount.ID.String(),
			ContainedKind: string(amount.ContainedKind),
			ContainedID:   amount.ContainedID.String(),
			ContainedName: comestible.Label,
			Quantity:      amount.Quantity,
			Calories:      amount.Calories,
		})
	}
	return res, nil
}
