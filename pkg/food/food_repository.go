package food

import (
	"Household-Food-Tracker/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FoodRepository interface {
		// Transaction runs fn against a repository bound to one
		// database transaction; every top-level mutation goes
		// through here so the cascade is all-or-nothing.
		Transaction(ctx context.Context, fn func(FoodRepository) error) error

		// Ingredients
		AddIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id uuid.UUID) error
		GetIngredients(ctx context.Context, page, limit int) ([]*entities.Ingredient, int64, error)

		// Dishes
		AddDish(ctx context.Context, dish *entities.Dish) error
		GetDishByID(ctx context.Context, id uuid.UUID) (*entities.Dish, error)
		// GetDishForUpdate locks the dish row until the surrounding
		// transaction commits; used by the conservation check.
		GetDishForUpdate(ctx context.Context, id uuid.UUID) (*entities.Dish, error)
		UpdateDish(ctx context.Context, dish *entities.Dish) error
		DeleteDish(ctx context.Context, id uuid.UUID) error
		GetDishes(ctx context.Context, householdID uuid.UUID, page, limit int) ([]*entities.Dish, int64, error)
		ReplaceDishCooks(ctx context.Context, dish *entities.Dish, cooks []*entities.User) error

		// Amounts
		AddAmount(ctx context.Context, amount *entities.Amount) error
		GetAmountByID(ctx context.Context, id uuid.UUID) (*entities.Amount, error)
		UpdateAmount(ctx context.Context, amount *entities.Amount) error
		DeleteAmount(ctx context.Context, id uuid.UUID) error
		GetDishAmounts(ctx context.Context, dishID uuid.UUID) ([]*entities.Amount, error)
		GetAmountsContaining(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) ([]*entities.Amount, error)
		SumAmountQuantities(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (float64, error)

		// Meals
		AddMeal(ctx context.Context, meal *entities.Meal) error
		GetMealByID(ctx context.Context, id uuid.UUID) (*entities.Meal, error)
		UpdateMeal(ctx context.Context, meal *entities.Meal) error
		DeleteMeal(ctx context.Context, id uuid.UUID) error
		GetMeals(ctx context.Context, householdID uuid.UUID, from, to *time.Time) ([]*entities.Meal, error)
		SumMealCalories(ctx context.Context, date time.Time) (float64, error)

		// Portions
		AddPortion(ctx context.Context, portion *entities.Portion) error
		GetPortionByID(ctx context.Context, id uuid.UUID) (*entities.Portion, error)
		UpdatePortion(ctx context.Context, portion *entities.Portion) error
		DeletePortion(ctx context.Context, id uuid.UUID) error
		GetMealPortions(ctx context.Context, mealID uuid.UUID) ([]*entities.Portion, error)
		GetPortionsOf(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) ([]*entities.Portion, error)
		SumPortionQuantities(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (float64, error)

		// GetComestible resolves a tagged comestible reference.
		GetComestible(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (*Comestible, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Transaction(ctx context.Context, fn func(FoodRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&foodRepository{db: tx})
	})
}

func (r *foodRepository) AddIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *foodRepository) GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *foodRepository) GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *foodRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *foodRepository) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Ingredient{}).Error
}

func (r *foodRepository) GetIngredients(ctx context.Context, page, limit int) ([]*entities.Ingredient, int64, error) {
	var ingredients []*entities.Ingredient
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}
	return ingredients, count, nil
}

func (r *foodRepository) AddDish(ctx context.Context, dish *entities.Dish) error {
	return r.db.WithContext(ctx).Omit("Cooks").Create(dish).Error
}

func (r *foodRepository) GetDishByID(ctx context.Context, id uuid.UUID) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).
		Preload("Cooks").
		Preload("Amounts").
		Where("id = ?", id).
		First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *foodRepository) GetDishForUpdate(ctx context.Context, id uuid.UUID) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *foodRepository) UpdateDish(ctx context.Context, dish *entities.Dish) error {
	return r.db.WithContext(ctx).Omit("Cooks", "Amounts").Save(dish).Error
}

func (r *foodRepository) DeleteDish(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM dish_cooks WHERE dish_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Dish{}).Error
}

func (r *foodRepository) GetDishes(ctx context.Context, householdID uuid.UUID, page, limit int) ([]*entities.Dish, int64, error) {
	var dishes []*entities.Dish
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.Dish{}).Where("household_id = ?", householdID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Cooks").
		Offset(offset).Limit(limit).
		Order("date_cooked desc").
		Find(&dishes).Error; err != nil {
		return nil, 0, err
	}
	return dishes, count, nil
}

func (r *foodRepository) ReplaceDishCooks(ctx context.Context, dish *entities.Dish, cooks []*entities.User) error {
	return r.db.WithContext(ctx).Model(dish).Association("Cooks").Replace(cooks)
}

func (r *foodRepository) AddAmount(ctx context.Context, amount *entities.Amount) error {
	return r.db.WithContext(ctx).Create(amount).Error
}

func (r *foodRepository) GetAmountByID(ctx context.Context, id uuid.UUID) (*entities.Amount, error) {
	var amount entities.Amount
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&amount).Error; err != nil {
		return nil, err
	}
	return &amount, nil
}

func (r *foodRepository) UpdateAmount(ctx context.Context, amount *entities.Amount) error {
	return r.db.WithContext(ctx).Save(amount).Error
}

func (r *foodRepository) DeleteAmount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Amount{}).Error
}

func (r *foodRepository) GetDishAmounts(ctx context.Context, dishID uuid.UUID) ([]*entities.Amount, error) {
	var amounts []*entities.Amount
	if err := r.db.WithContext(ctx).
		Where("containing_dish_id = ?", dishID).
		Order("created_at asc").
		Find(&amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *foodRepository) GetAmountsContaining(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) ([]*entities.Amount, error) {
	var amounts []*entities.Amount
	if err := r.db.WithContext(ctx).
		Where("contained_kind = ? AND contained_id = ?", kind, id).
		Find(&amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *foodRepository) SumAmountQuantities(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.Amount{}).
		Where("contained_kind = ? AND contained_id = ?", kind, id).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *foodRepository) AddMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *foodRepository) GetMealByID(ctx context.Context, id uuid.UUID) (*entities.Meal, error) {
	var meal entities.Meal
	if err := r.db.WithContext(ctx).
		Preload("Portions").
		Where("id = ?", id).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *foodRepository) UpdateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Omit("Portions").Save(meal).Error
}

func (r *foodRepository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Meal{}).Error
}

func (r *foodRepository) GetMeals(ctx context.Context, householdID uuid.UUID, from, to *time.Time) ([]*entities.Meal, error) {
	var meals []*entities.Meal
	query := r.db.WithContext(ctx).
		Preload("Portions").
		Where("household_id = ?", householdID).
		Order("date desc, time desc")

	if from != nil && to != nil {
		query = query.Where("date >= ? AND date < ?", *from, *to)
	}

	if err := query.Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *foodRepository) SumMealCalories(ctx context.Context, date time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.Meal{}).
		Where("date = ?", date.Format("2006-01-02")).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error
	return total, err
}

func (r *foodRepository) AddPortion(ctx context.Context, portion *entities.Portion) error {
	return r.db.WithContext(ctx).Create(portion).Error
}

func (r *foodRepository) GetPortionByID(ctx context.Context, id uuid.UUID) (*entities.Portion, error) {
	var portion entities.Portion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&portion).Error; err != nil {
		return nil, err
	}
	return &portion, nil
}

func (r *foodRepository) UpdatePortion(ctx context.Context, portion *entities.Portion) error {
	return r.db.WithContext(ctx).Save(portion).Error
}

func (r *foodRepository) DeletePortion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Portion{}).Error
}

func (r *foodRepository) GetMealPortions(ctx context.Context, mealID uuid.UUID) ([]*entities.Portion, error) {
	var portions []*entities.Portion
	if err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Order("created_at asc").
		Find(&portions).Error; err != nil {
		return nil, err
	}
	return portions, nil
}

func (r *foodRepository) GetPortionsOf(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) ([]*entities.Portion, error) {
	var portions []*entities.Portion
	if err := r.db.WithContext(ctx).
		Where("comestible_kind = ? AND comestible_id = ?", kind, id).
		Find(&portions).Error; err != nil {
		return nil, err
	}
	return portions, nil
}

func (r *foodRepository) SumPortionQuantities(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.Portion{}).
		Where("comestible_kind = ? AND comestible_id = ?", kind, id).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *foodRepository) GetComestible(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (*Comestible, error) {
	switch kind {
	case entities.KindIngredient:
		ingredient, err := r.GetIngredientByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return ingredientComestible(ingredient), nil
	case entities.KindDish:
		var dish entities.Dish
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
			return nil, err
		}
		return dishComestible(&dish), nil
	default:
		return nil, errors.New("unknown comestible kind")
	}
}
