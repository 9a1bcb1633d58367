package food

import (
	"Household-Food-Tracker/entities"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedKitchen builds a small containment chain:
//
//	flour (100 g, 75 cal) -> 50 g in soup (500 g) -> 100 g of soup in a dinner
//
// so soup carries 37.5 cal and the dinner portion 7.5 cal.
func seedKitchen(t *testing.T) (*memRepository, *entities.Ingredient, *entities.Dish, *entities.Meal) {
	t.Helper()
	ctx := context.Background()
	repo := newMemRepository()

	flour := &entities.Ingredient{
		ID:       uuid.New(),
		Name:     "flour",
		Quantity: 100,
		Unit:     entities.UnitGrams,
		Calories: 75,
	}
	require.NoError(t, repo.AddIngredient(ctx, flour))

	soup := &entities.Dish{
		ID:         uuid.New(),
		Name:       "soup",
		Quantity:   500,
		Unit:       entities.UnitGrams,
		DateCooked: time.Date(2012, 1, 18, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.AddDish(ctx, soup))

	require.NoError(t, repo.AddAmount(ctx, &entities.Amount{
		ID:               uuid.New(),
		ContainingDishID: soup.ID,
		ContainedKind:    entities.KindIngredient,
		ContainedID:      flour.ID,
		Quantity:         50,
	}))
	require.NoError(t, recomputeDish(ctx, repo, soup.ID))

	dinner := &entities.Meal{
		ID:   uuid.New(),
		Name: entities.MealDinner,
		Date: time.Date(2012, 1, 18, 0, 0, 0, 0, time.UTC),
		Time: "19:00:00",
	}
	require.NoError(t, repo.AddMeal(ctx, dinner))
	require.NoError(t, repo.AddPortion(ctx, &entities.Portion{
		ID:             uuid.New(),
		MealID:         dinner.ID,
		ComestibleKind: entities.KindDish,
		ComestibleID:   soup.ID,
		Quantity:       100,
		Calories:       7.5,
	}))
	require.NoError(t, recomputeMeal(ctx, repo, dinner.ID))

	return repo, flour, soup, dinner
}

func TestRecomputeDishSumsAmounts(t *testing.T) {
	repo, _, soup, _ := seedKitchen(t)

	got, err := repo.GetDishByID(context.Background(), soup.ID)
	require.NoError(t, err)
	assert.Equal(t, 37.5, got.Calories)
	require.Len(t, got.Amounts, 1)
	assert.Equal(t, 37.5, got.Amounts[0].Calories)
}

func TestIngredientChangePropagatesToMeal(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, dinner := seedKitchen(t)

	flour.Calories = 150
	require.NoError(t, repo.UpdateIngredient(ctx, flour))
	require.NoError(t, recomputeDependents(ctx, repo, entities.KindIngredient, flour.ID))

	gotDish, err := repo.GetDishByID(ctx, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, gotDish.Calories)

	gotMeal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	require.Len(t, gotMeal.Portions, 1)
	assert.Equal(t, 15.0, gotMeal.Portions[0].Calories)
	assert.Equal(t, 15.0, gotMeal.Calories)
}

func TestIngredientQuantityChangeHalvesDensity(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, dinner := seedKitchen(t)

	// same calories over twice the reference quantity
	flour.Quantity = 200
	require.NoError(t, repo.UpdateIngredient(ctx, flour))
	require.NoError(t, recomputeDependents(ctx, repo, entities.KindIngredient, flour.ID))

	gotDish, err := repo.GetDishByID(ctx, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, 18.75, gotDish.Calories)

	gotMeal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.75, gotMeal.Calories)
}

func TestCascadeThroughNestedDishes(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, _ := seedKitchen(t)

	// stew (1000 g) contains 250 g of soup
	stew := &entities.Dish{
		ID:         uuid.New(),
		Name:       "stew",
		Quantity:   1000,
		Unit:       entities.UnitGrams,
		DateCooked: time.Date(2012, 1, 19, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.AddDish(ctx, stew))
	require.NoError(t, repo.AddAmount(ctx, &entities.Amount{
		ID:               uuid.New(),
		ContainingDishID: stew.ID,
		ContainedKind:    entities.KindDish,
		ContainedID:      soup.ID,
		Quantity:         250,
	}))
	require.NoError(t, recomputeDish(ctx, repo, stew.ID))

	gotStew, err := repo.GetDishByID(ctx, stew.ID)
	require.NoError(t, err)
	assert.Equal(t, 18.75, gotStew.Calories)

	// doubling the ingredient's calories doubles both dishes
	flour.Calories = 150
	require.NoError(t, repo.UpdateIngredient(ctx, flour))
	require.NoError(t, recomputeDependents(ctx, repo, entities.KindIngredient, flour.ID))

	gotStew, err = repo.GetDishByID(ctx, stew.ID)
	require.NoError(t, err)
	assert.Equal(t, 37.5, gotStew.Calories)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, dinner := seedKitchen(t)

	// recomputing without an underlying change must not move any
	// derived value, no matter how often it runs
	require.NoError(t, recomputeDish(ctx, repo, soup.ID))
	require.NoError(t, recomputeDish(ctx, repo, soup.ID))
	require.NoError(t, recomputeDependents(ctx, repo, entities.KindIngredient, flour.ID))
	require.NoError(t, recomputeDependents(ctx, repo, entities.KindIngredient, flour.ID))

	gotDish, err := repo.GetDishByID(ctx, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, 37.5, gotDish.Calories)
	require.Len(t, gotDish.Amounts, 1)
	assert.Equal(t, 37.5, gotDish.Amounts[0].Calories)

	gotMeal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, gotMeal.Calories)
	require.Len(t, gotMeal.Portions, 1)
	assert.Equal(t, 7.5, gotMeal.Portions[0].Calories)
}

func TestRecomputeMealBottomsOut(t *testing.T) {
	ctx := context.Background()
	repo, _, _, dinner := seedKitchen(t)

	got, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, got.Calories)
}
