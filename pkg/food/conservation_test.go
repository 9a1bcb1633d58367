package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDish(quantity float64) *entities.Dish {
	return &entities.Dish{
		ID:         uuid.New(),
		Name:       "Test dish",
		Quantity:   quantity,
		Unit:       entities.UnitGrams,
		DateCooked: time.Date(2012, 1, 18, 0, 0, 0, 0, time.UTC),
	}
}

func TestRemainingQuantity(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()

	dish := testDish(1000)
	require.NoError(t, repo.AddDish(ctx, dish))

	meal := &entities.Meal{ID: uuid.New(), Name: entities.MealLunch}
	require.NoError(t, repo.AddMeal(ctx, meal))
	require.NoError(t, repo.AddPortion(ctx, &entities.Portion{
		ID:             uuid.New(),
		MealID:         meal.ID,
		ComestibleKind: entities.KindDish,
		ComestibleID:   dish.ID,
		Quantity:       500,
	}))

	other := testDish(2000)
	require.NoError(t, repo.AddDish(ctx, other))
	require.NoError(t, repo.AddAmount(ctx, &entities.Amount{
		ID:               uuid.New(),
		ContainingDishID: other.ID,
		ContainedKind:    entities.KindDish,
		ContainedID:      dish.ID,
		Quantity:         100,
	}))

	remaining, err := RemainingQuantity(ctx, repo, dish)
	require.NoError(t, err)
	assert.Equal(t, 400.0, remaining)
}

func TestCheckSingleDraw(t *testing.T) {
	dish := testDish(1000)

	// remaining 400, new row asking for 400 exactly
	assert.NoError(t, checkSingleDraw(dish, 400, 0, 400))

	// new row over-drawing
	err := checkSingleDraw(dish, 400, 0, 401)
	require.Error(t, err)
	assert.Equal(t,
		"This portion's quantity is greater than the remaining quantity of the dish (400 g).",
		err.Error())

	// a row editing itself gets its own saved quantity back as credit
	assert.NoError(t, checkSingleDraw(dish, 400, 600, 1000))
	err = checkSingleDraw(dish, 400, 600, 1001)
	require.Error(t, err)
	assert.Equal(t,
		"This portion's quantity is greater than the remaining quantity of the dish (1000 g).",
		err.Error())
}

func TestCheckBatchDraw(t *testing.T) {
	dish := testDish(1000)

	// two rows of 300 each pass alone against remaining 400 but not together
	assert.NoError(t, checkSingleDraw(dish, 400, 0, 300))
	err := checkBatchDraw(dish, 400, 0, 600)
	require.Error(t, err)
	assert.Equal(t,
		"The remaining quantity of Test dish (2012-01-18) (400 g) is less than the total quantity of it in this meal.",
		err.Error())

	var insufficient *domain.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Batch)
	assert.Equal(t, 400.0, insufficient.Available)

	assert.NoError(t, checkBatchDraw(dish, 400, 0, 400))

	// saved credit from the batch's own persisted rows counts once
	assert.NoError(t, checkBatchDraw(dish, 400, 200, 600))
}
