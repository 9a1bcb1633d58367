package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"

	"github.com/google/uuid"
)

// Comestible is the resolved target of an Amount or Portion reference:
// either an ingredient or a dish, flattened to the fields the calorie
// computation needs. ReferenceCalories is the calorie total for
// ReferenceQuantity of the comestible (for a dish, its derived total).
type Comestible struct {
	Kind              entities.ComestibleKind
	ID                uuid.UUID
	Label             string
	ReferenceQuantity float64
	ReferenceCalories float64
	Unit              entities.Unit
}

// DeriveCalories converts a consumed quantity of a comestible into a
// calorie value using the comestible's calorie density. A zero or
// negative reference quantity means an upstream invariant was broken.
func DeriveCalories(quantity float64, c *Comestible) (float64, error) {
	if c.ReferenceQuantity <= 0 {
		return 0, domain.ErrDivisionByZero
	}
	return quantity * c.ReferenceCalories / c.ReferenceQuantity, nil
}

func ingredientComestible(i *entities.Ingredient) *Comestible {
	return &Comestible{
		Kind:              entities.KindIngredient,
		ID:                i.ID,
		Label:             i.Name,
		ReferenceQuantity: i.Quantity,
		ReferenceCalories: i.Calories,
		Unit:              i.Unit,
	}
}

func dishComestible(d *entities.Dish) *Comestible {
	return &Comestible{
		Kind:              entities.KindDish,
		ID:                d.ID,
		Label:             d.Label(),
		ReferenceQuantity: d.Quantity,
		ReferenceCalories: d.Calories,
		Unit:              d.Unit,
	}
}
