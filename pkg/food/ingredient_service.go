package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		AddIngredient(ctx context.Context, req domain.AddIngredientRequest) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, id string) error
		GetIngredientByID(ctx context.Context, id string) (domain.IngredientResponse, error)
		GetIngredients(ctx context.Context, page, limit int) ([]domain.IngredientResponse, int64, error)
	}

	ingredientService struct {
		foodRepository FoodRepository
	}
)

func NewIngredientService(foodRepository FoodRepository) IngredientService {
	return &ingredientService{foodRepository: foodRepository}
}

func ingredientResponse(i *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:       i.ID.String(),
		Name:     i.Name,
		Quantity: i.Quantity,
		Unit:     string(i.Unit),
		Calories: i.Calories,
	}
}

func (s *ingredientService) AddIngredient(ctx context.Context, req domain.AddIngredientRequest) (domain.IngredientResponse, error) {
	if err := ValidatePositive(req.Quantity); err != nil {
		return domain.IngredientResponse{}, err
	}
	if err := ValidatePositiveOrZero(req.Calories); err != nil {
		return domain.IngredientResponse{}, err
	}

	if _, err := s.foodRepository.GetIngredientByName(ctx, req.Name); err == nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNameTaken
	}

	ingredient := &entities.Ingredient{
		ID:       uuid.New(),
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     entities.Unit(req.Unit),
		Calories: req.Calories,
	}
	if err := s.foodRepository.AddIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return ingredientResponse(ingredient), nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	var updated *entities.Ingredient
	err = s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		ingredient, err := repo.GetIngredientByID(ctx, ingredientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrIngredientNotFound
			}
			return err
		}

		if req.Name != "" && req.Name != ingredient.Name {
			if _, err := repo.GetIngredientByName(ctx, req.Name); err == nil {
				return domain.ErrIngredientNameTaken
			}
			ingredient.Name = req.Name
		}
		if req.Quantity != nil {
			if err := ValidatePositive(*req.Quantity); err != nil {
				return err
			}
			ingredient.Quantity = *req.Quantity
		}
		if req.Unit != "" {
			ingredient.Unit = entities.Unit(req.Unit)
		}
		if req.Calories != nil {
			if err := ValidatePositiveOrZero(*req.Calories); err != nil {
				return err
			}
			ingredient.Calories = *req.Calories
		}

		if err := repo.UpdateIngredient(ctx, ingredient); err != nil {
			return err
		}
		updated = ingredient

		// every amount and portion of this ingredient, and everything
		// above them, picks up the new calorie density here
		return recomputeDependents(ctx, repo, entities.KindIngredient, ingredient.ID)
	})
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	return ingredientResponse(updated), nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id string) error {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.foodRepository.Transaction(ctx, func(repo FoodRepository) error {
		if _, err := repo.GetIngredientByID(ctx, ingredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrIngredientNotFound
			}
			return err
		}

		amounts, err := repo.GetAmountsContaining(ctx, entities.KindIngredient, ingredientID)
		if err != nil {
			return err
		}
		dishIDs := make([]uuid.UUID, 0, len(amounts))
		seenDish := map[uuid.UUID]bool{}
		for _, amount := range amounts {
			if err := repo.DeleteAmount(ctx, amount.ID); err != nil {
				return err
			}
			if !seenDish[amount.ContainingDishID] {
				seenDish[amount.ContainingDishID] = true
				dishIDs = append(dishIDs, amount.ContainingDishID)
			}
		}

		portions, err := repo.GetPortionsOf(ctx, entities.KindIngredient, ingredientID)
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

		if err := repo.DeleteIngredient(ctx, ingredientID); err != nil {
			return err
		}

		for _, dishID := range dishIDs {
			if err := recomputeDish(ctx, repo, dishID); err != nil {
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

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	ingredient, err := s.foodRepository.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return ingredientResponse(ingredient), nil
}

func (s *ingredientService) GetIngredients(ctx context.Context, page, limit int) ([]domain.IngredientResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	ingredients, count, err := s.foodRepository.GetIngredients(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, ingredientResponse(ingredient))
	}
	return out, count, nil
}
