package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
)

var (
	MessageSuccessAddDish       = "dish added successfully"
	MessageSuccessUpdateDish    = "dish updated successfully"
	MessageSuccessDeleteDish    = "dish deleted successfully"
	MessageSuccessGetDishes     = "dishes retrieved successfully"
	MessageSuccessGetDish       = "dish retrieved successfully"
	MessageSuccessMultiplyDish  = "dish multiplied successfully"
	MessageSuccessDuplicateDish = "dish duplicated successfully"
	MessageSuccessUploadImage   = "dish image uploaded successfully"

	MessageFailedAddDish       = "failed to add dish"
	MessageFailedUpdateDish    = "failed to update dish"
	MessageFailedDeleteDish    = "failed to delete dish"
	MessageFailedGetDishes     = "failed to retrieve dishes"
	MessageFailedGetDish       = "failed to retrieve dish"
	MessageFailedMultiplyDish  = "failed to multiply dish"
	MessageFailedDuplicateDish = "failed to duplicate dish"
	MessageFailedUploadImage   = "failed to upload dish image"

	ErrDishNotFound       = errors.New("dish not found")
	ErrAmountNotFound     = errors.New("amount not found")
	ErrComestibleNotFound = errors.New("comestible not found")
	ErrSelfContainment    = errors.New("a dish cannot contain itself")
	ErrContainmentCycle   = errors.New("this amount would create a containment cycle")
	ErrInvalidFactor      = errors.New("enter a number greater than 0")
	ErrInvalidOperation   = errors.New("operation must be multiply or divide")
	ErrInvalidDate        = errors.New("enter a valid date")
)

// InsufficientQuantityError reports a failed conservation check together
// with the quantity that was actually available, so callers can display it.
type InsufficientQuantityError struct {
	Label     string
	Available float64
	Unit      string
	Batch     bool
}

func (e *InsufficientQuantityError) Error() string {
	if e.Batch {
		return fmt.Sprintf("The remaining quantity of %s (%g %s) is less than the total quantity of it in this meal.",
			e.Label, e.Available, e.Unit)
	}
	return fmt.Sprintf("This portion's quantity is greater than the remaining quantity of the dish (%g %s).",
		e.Available, e.Unit)
}

type (
	AmountEdit struct {
		ID            string  `json:"id,omitempty" validate:"omitempty,uuid"`
		ContainedKind string  `json:"contained_kind" validate:"required,oneof=ingredient dish"`
		ContainedID   string  `json:"contained_id" validate:"required,uuid"`
		Quantity      float64 `json:"quantity" validate:"gte=0"`
		Delete        bool    `json:"delete,omitempty"`
	}

	AddDishRequest struct {
		Name       string   `json:"name" validate:"required"`
		Quantity   float64  `json:"quantity" validate:"required,gt=0"`
		Unit       string   `json:"unit" validate:"required,oneof=g ml items"`
		DateCooked string   `json:"date_cooked" validate:"required"`
		CookIDs    []string `json:"cook_ids" validate:"omitempty,dive,uuid"`
		RecipeURL  string   `json:"recipe_url" validate:"omitempty,url"`
	}

	UpdateDishRequest struct {
		Name       string       `json:"name" validate:"omitempty"`
		Quantity   *float64     `json:"quantity" validate:"omitempty,gt=0"`
		Unit       string       `json:"unit" validate:"omitempty,oneof=g ml items"`
		DateCooked string       `json:"date_cooked" validate:"omitempty"`
		CookIDs    []string     `json:"cook_ids" validate:"omitempty,dive,uuid"`
		RecipeURL  string       `json:"recipe_url" validate:"omitempty,url"`
		Amounts    []AmountEdit `json:"amounts" validate:"omitempty,dive"`
	}

	MultiplyDishRequest struct {
		Operation string  `json:"operation" validate:"required,oneof=multiply divide"`
		Factor    float64 `json:"factor" validate:"required,gt=0"`
	}

	DuplicateDishRequest struct {
		DateCooked string `json:"date_cooked" validate:"required"`
	}

	UploadDishImageRequest struct {
		DishID string                `json:"dish_id" form:"dish_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	AmountResponse struct {
		ID            string  `json:"id"`
		ContainedKind string  `json:"contained_kind"`
		ContainedID   string  `json:"contained_id"`
		ContainedName string  `json:"contained_name"`
		Quantity      float64 `json:"quantity"`
		Calories      float64 `json:"calories"`
	}

	DishResponse struct {
		ID                string           `json:"id"`
		Name              string           `json:"name"`
		Quantity          float64          `json:"quantity"`
		Unit              string           `json:"unit"`
		DateCooked        string           `json:"date_cooked"`
		HouseholdID       string           `json:"household_id"`
		RecipeURL         string           `json:"recipe_url,omitempty"`
		Calories          float64          `json:"calories"`
		Cooks             string           `json:"cooks"`
		RemainingQuantity float64          `json:"remaining_quantity"`
		Amounts           []AmountResponse `json:"amounts,omitempty"`
	}

	RemainingQuantityResponse struct {
		DishID            string  `json:"dish_id"`
		RemainingQuantity float64 `json:"remaining_quantity"`
		Unit              string  `json:"unit"`
	}
)
