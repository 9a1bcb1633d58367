package food

import (
	"Household-Food-Tracker/domain"
)

// ValidatePositive rejects quantities that must be strictly greater
// than zero (ingredient and dish reference quantities, multiply factors).
func ValidatePositive(x float64) error {
	if x <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// ValidatePositiveOrZero rejects negative values (amount and portion
// quantities, calorie fields).
func ValidatePositiveOrZero(x float64) error {
	if x < 0 {
		return domain.ErrInvalidQuantityOrZero
	}
	return nil
}
