package domain

import "errors"

var (
	MessageSuccessAddMeal       = "meal added successfully"
	MessageSuccessUpdateMeal    = "meal updated successfully"
	MessageSuccessDeleteMeal    = "meal deleted successfully"
	MessageSuccessGetMeals      = "meals retrieved successfully"
	MessageSuccessGetMeal       = "meal retrieved successfully"
	MessageSuccessDuplicateMeal = "meal duplicated successfully"

	MessageFailedAddMeal       = "failed to add meal"
	MessageFailedUpdateMeal    = "failed to update meal"
	MessageFailedDeleteMeal    = "failed to delete meal"
	MessageFailedGetMeals      = "failed to retrieve meals"
	MessageFailedGetMeal       = "failed to retrieve meal"
	MessageFailedDuplicateMeal = "failed to duplicate meal"

	ErrMealNotFound    = errors.New("meal not found")
	ErrPortionNotFound = errors.New("portion not found")
	ErrInvalidMealName = errors.New("invalid meal name")
	ErrInvalidTime     = errors.New("enter a valid time")
)

type (
	PortionEdit struct {
		ID             string  `json:"id,omitempty" validate:"omitempty,uuid"`
		ComestibleKind string  `json:"comestible_kind" validate:"required,oneof=ingredient dish"`
		ComestibleID   string  `json:"comestible_id" validate:"required,uuid"`
		Quantity       float64 `json:"quantity" validate:"gte=0"`
		Delete         bool    `json:"delete,omitempty"`
	}

	AddMealRequest struct {
		Name     string        `json:"name" validate:"required,oneof=breakfast lunch dinner snack elevenses brunch tea"`
		Date     string        `json:"date" validate:"required"`
		Time     string        `json:"time" validate:"required"`
		Portions []PortionEdit `json:"portions" validate:"omitempty,dive"`
	}

	UpdateMealRequest struct {
		Name     string        `json:"name" validate:"omitempty,oneof=breakfast lunch dinner snack elevenses brunch tea"`
		Date     string        `json:"date" validate:"omitempty"`
		Time     string        `json:"time" validate:"omitempty"`
		Portions []PortionEdit `json:"portions" validate:"omitempty,dive"`
	}

	DuplicateMealRequest struct {
		Date string `json:"date" validate:"required"`
	}

	PortionResponse struct {
		ID             string  `json:"id"`
		ComestibleKind string  `json:"comestible_kind"`
		ComestibleID   string  `json:"comestible_id"`
		ComestibleName string  `json:"comestible_name"`
		Quantity       float64 `json:"quantity"`
		Calories       float64 `json:"calories"`
	}

	MealResponse struct {
		ID          string            `json:"id"`
		Name        string            `json:"name"`
		Date        string            `json:"date"`
		Time        string            `json:"time"`
		HouseholdID string            `json:"household_id"`
		UserID      string            `json:"user_id"`
		Calories    float64           `json:"calories"`
		Portions    []PortionResponse `json:"portions,omitempty"`
	}
)
