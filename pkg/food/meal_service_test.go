package food

import (
	"Household-Food-Tracker/domain"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMealTime(t *testing.T) {
	got, err := parseMealTime("19:30")
	require.NoError(t, err)
	assert.Equal(t, "19:30:00", got)

	got, err = parseMealTime("07:15:30")
	require.NoError(t, err)
	assert.Equal(t, "07:15:30", got)

	_, err = parseMealTime("quarter past nine")
	assert.ErrorIs(t, err, domain.ErrInvalidTime)
}

func TestApplyPortionEditsComputesCalories(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)

	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{
		{ComestibleKind: "ingredient", ComestibleID: flour.ID.String(), Quantity: 200},
		{ComestibleKind: "dish", ComestibleID: soup.ID.String(), Quantity: 50},
	})
	require.NoError(t, err)
	require.NoError(t, recomputeMeal(ctx, repo, dinner.ID))

	got, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	require.Len(t, got.Portions, 3)
	// 7.5 existing + 150 of flour + 3.75 of soup
	assert.InDelta(t, 161.25, got.Calories, 1e-9)
}

func TestApplyPortionEditsJointOverdraw(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)

	// 400 g of soup remain; two rows of 300 both pass alone
	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{
		{ComestibleKind: "dish", ComestibleID: soup.ID.String(), Quantity: 300},
		{ComestibleKind: "dish", ComestibleID: soup.ID.String(), Quantity: 300},
	})
	require.Error(t, err)
	assert.Equal(t,
		"The remaining quantity of soup (2012-01-18) (400 g) is less than the total quantity of it in this meal.",
		err.Error())

	got, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Len(t, got.Portions, 1)
}

func TestApplyPortionEditsSingleOverdraw(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)

	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{
		{ComestibleKind: "dish", ComestibleID: soup.ID.String(), Quantity: 450},
	})
	require.Error(t, err)
	assert.Equal(t,
		"This portion's quantity is greater than the remaining quantity of the dish (400 g).",
		err.Error())
}

func TestApplyPortionEditsEditOwnRow(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	require.Len(t, meal.Portions, 1)
	existing := meal.Portions[0]

	// the edited row's saved 100 g come back as credit: up to 500 is fine
	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{{
		ID:             existing.ID.String(),
		ComestibleKind: "dish",
		ComestibleID:   soup.ID.String(),
		Quantity:       500,
	}})
	require.NoError(t, err)

	got, err := repo.GetPortionByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Quantity)
	assert.Equal(t, 37.5, got.Calories)
}

func TestApplyPortionEditsIngredientsNotConserved(t *testing.T) {
	ctx := context.Background()
	repo, flour, _, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)

	// far more than the ingredient's reference quantity is fine
	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{{
		ComestibleKind: "ingredient",
		ComestibleID:   flour.ID.String(),
		Quantity:       100000,
	}})
	assert.NoError(t, err)
}

func TestApplyPortionEditsDeleteRow(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	existing := meal.Portions[0]

	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{{
		ID:             existing.ID.String(),
		ComestibleKind: "dish",
		ComestibleID:   soup.ID.String(),
		Delete:         true,
	}})
	require.NoError(t, err)
	require.NoError(t, recomputeMeal(ctx, repo, dinner.ID))

	got, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Portions)
	assert.Equal(t, 0.0, got.Calories)
}

func TestApplyPortionEditsUnknownComestible(t *testing.T) {
	ctx := context.Background()
	repo, _, _, dinner := seedKitchen(t)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)

	err = applyPortionEdits(ctx, repo, meal, []domain.PortionEdit{{
		ComestibleKind: "ingredient",
		ComestibleID:   uuid.New().String(),
		Quantity:       10,
	}})
	assert.ErrorIs(t, err, domain.ErrComestibleNotFound)
}

func TestDeleteMealFreesDishQuantity(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, dinner := seedKitchen(t)

	remaining, err := RemainingQuantity(ctx, repo, soup)
	require.NoError(t, err)
	require.Equal(t, 400.0, remaining)

	meal, err := repo.GetMealByID(ctx, dinner.ID)
	require.NoError(t, err)
	for _, p := range meal.Portions {
		require.NoError(t, repo.DeletePortion(ctx, p.ID))
	}
	require.NoError(t, repo.DeleteMeal(ctx, dinner.ID))

	remaining, err = RemainingQuantity(ctx, repo, soup)
	require.NoError(t, err)
	assert.Equal(t, 500.0, remaining)
}
