package domain

import "errors"

var (
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessGetIngredient    = "ingredient retrieved successfully"

	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"
	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedGetIngredient    = "failed to retrieve ingredient"

	ErrIngredientNotFound    = errors.New("ingredient not found")
	ErrIngredientNameTaken   = errors.New("an ingredient with this name already exists")
	ErrInvalidQuantity       = errors.New("enter a number greater than 0")
	ErrInvalidQuantityOrZero = errors.New("enter a number not less than 0")
	ErrInvalidUnit           = errors.New("invalid unit")
	ErrDivisionByZero        = errors.New("reference quantity is zero or missing")
)

type (
	AddIngredientRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required,oneof=g ml items"`
		Calories float64 `json:"calories" validate:"gte=0"`
	}

	UpdateIngredientRequest struct {
		Name     string   `json:"name" validate:"omitempty"`
		Quantity *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit     string   `json:"unit" validate:"omitempty,oneof=g ml items"`
		Calories *float64 `json:"calories" validate:"omitempty,gte=0"`
	}

	IngredientResponse struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Calories float64 `json:"calories"`
	}
)
