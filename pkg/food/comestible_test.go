package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCalories(t *testing.T) {
	flour := ingredientComestible(&entities.Ingredient{
		ID:       uuid.New(),
		Name:     "flour",
		Quantity: 100,
		Unit:     entities.UnitGrams,
		Calories: 75,
	})

	got, err := DeriveCalories(50, flour)
	require.NoError(t, err)
	assert.Equal(t, 37.5, got)

	got, err = DeriveCalories(0, flour)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestDeriveCaloriesZeroReference(t *testing.T) {
	broken := &Comestible{ReferenceQuantity: 0, ReferenceCalories: 100}

	_, err := DeriveCalories(50, broken)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, ValidatePositive(0.1))
	assert.ErrorIs(t, ValidatePositive(0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, ValidatePositive(-3), domain.ErrInvalidQuantity)

	assert.NoError(t, ValidatePositiveOrZero(0))
	assert.ErrorIs(t, ValidatePositiveOrZero(-0.5), domain.ErrInvalidQuantityOrZero)
}
