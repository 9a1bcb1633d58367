package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"context"
)

// RemainingQuantity is the dish's total yield minus everything already
// drawn from it, both as portions of meals and as amounts inside other
// dishes.
func RemainingQuantity(ctx context.Context, repo FoodRepository, dish *entities.Dish) (float64, error) {
	portioned, err := repo.SumPortionQuantities(ctx, entities.KindDish, dish.ID)
	if err != nil {
		return 0, err
	}
	contained, err := repo.SumAmountQuantities(ctx, entities.KindDish, dish.ID)
	if err != nil {
		return 0, err
	}
	return dish.Quantity - portioned - contained, nil
}

// checkSingleDraw validates one portion/amount row drawing on a dish.
// saved is the row's previously persisted quantity (0 for a new row):
// a row editing its own quantity must not be double-counted as "used".
func checkSingleDraw(dish *entities.Dish, remaining, saved, requested float64) error {
	if remaining+saved-requested < 0 {
		return &domain.InsufficientQuantityError{
			Label:     dish.Label(),
			Available: remaining + saved,
			Unit:      string(dish.Unit),
		}
	}
	return nil
}

// checkBatchDraw validates the joint draw of a whole batch of rows on
// one dish. Two rows that each pass the single-row check can still
// jointly over-draw the dish; this is the cross-row rule.
func checkBatchDraw(dish *entities.Dish, remaining, saved, requested float64) error {
	if remaining+saved-requested < 0 {
		return &domain.InsufficientQuantityError{
			Label:     dish.Label(),
			Available: remaining + saved,
			Unit:      string(dish.Unit),
			Batch:     true,
		}
	}
	return nil
}
