package food

import (
	"Household-Food-Tracker/entities"
	"context"
	"log"

	"github.com/google/uuid"
)

// The cascade keeps every derived calories field consistent. Each
// top-level mutation calls one of these inside its transaction; the
// recursion is depth-first and terminates because the containment
// graph is kept acyclic at amount-write time.
//
// Dependency edges:
//
//	ingredient -> amounts/portions referencing it
//	dish       -> amounts/portions referencing it (after its own total changed)
//	amount     -> its containing dish
//	portion    -> its meal

// recomputeDependents recomputes everything that consumes the given
// comestible, recursively. Called after the comestible's own reference
// quantity or calories changed.
func recomputeDependents(ctx context.Context, repo FoodRepository, kind entities.ComestibleKind, id uuid.UUID) error {
	comestible, err := repo.GetComestible(ctx, kind, id)
	if err != nil {
		return err
	}

	amounts, err := repo.GetAmountsContaining(ctx, kind, id)
	if err != nil {
		return err
	}
	for _, amount := range amounts {
		amount.Calories, err = DeriveCalories(amount.Quantity, comestible)
		if err != nil {
			logCascadeFailure("amount", amount.ID, err)
			return err
		}
		if err := repo.UpdateAmount(ctx, amount); err != nil {
			return err
		}
		if err := recomputeDish(ctx, repo, amount.ContainingDishID); err != nil {
			return err
		}
	}

	portions, err := repo.GetPortionsOf(ctx, kind, id)
	if err != nil {
		return err
	}
	for _, portion := range portions {
		portion.Calories, err = DeriveCalories(portion.Quantity, comestible)
		if err != nil {
			logCascadeFailure("portion", portion.ID, err)
			return err
		}
		if err := repo.UpdatePortion(ctx, portion); err != nil {
			return err
		}
		if err := recomputeMeal(ctx, repo, portion.MealID); err != nil {
			return err
		}
	}
	return nil
}

// recomputeDish re-sums the dish's own amounts, persists the new total
// and pushes the change to everything that consumes the dish.
func recomputeDish(ctx context.Context, repo FoodRepository, dishID uuid.UUID) error {
	dish, err := repo.GetDishForUpdate(ctx, dishID)
	if err != nil {
		return err
	}

	amounts, err := repo.GetDishAmounts(ctx, dishID)
	if err != nil {
		return err
	}
	total := 0.0
	for _, amount := range amounts {
		total += amount.Calories
	}

	dish.Calories = total
	if err := repo.UpdateDish(ctx, dish); err != nil {
		return err
	}
	return recomputeDependents(ctx, repo, entities.KindDish, dishID)
}

// recomputeMeal re-sums the meal's portions. Meals have no dependents,
// so this is where every cascade bottoms out.
func recomputeMeal(ctx context.Context, repo FoodRepository, mealID uuid.UUID) error {
	meal, err := repo.GetMealByID(ctx, mealID)
	if err != nil {
		return err
	}

	portions, err := repo.GetMealPortions(ctx, mealID)
	if err != nil {
		return err
	}
	total := 0.0
	for _, portion := range portions {
		total += portion.Calories
	}

	meal.Calories = total
	return repo.UpdateMeal(ctx, meal)
}

// Cascade recomputation reuses already-validated data, so a failure
// here is an invariant violation rather than a user error.
func logCascadeFailure(entity string, id uuid.UUID, err error) {
	log.Printf("cascade: failed to recompute %s %s: %v", entity, id, err)
}
