package entities

import (
	"time"

	"github.com/google/uuid"
)

// MealName is the enumerated meal type.
type MealName string

const (
	MealBreakfast MealName = "breakfast"
	MealLunch     MealName = "lunch"
	MealDinner    MealName = "dinner"
	MealSnack     MealName = "snack"
	MealElevenses MealName = "elevenses"
	MealBrunch    MealName = "brunch"
	MealTea       MealName = "tea"
)

// Meal is an eating event. Calories is derived from its Portions and
// kept consistent by the cascade.
type Meal struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        MealName  `gorm:"type:varchar(9);not null" json:"name"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"`
	Time        string    `gorm:"type:time;not null" json:"time"`
	HouseholdID uuid.UUID `gorm:"index" json:"household_id"`
	UserID      uuid.UUID `json:"user_id"`
	Calories    float64   `json:"calories"`

	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Portions  []*Portion `gorm:"foreignKey:MealID" json:"portions,omitempty"`
	Timestamp
}

// Portion is a quantity of one comestible eaten within one meal.
type Portion struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MealID         uuid.UUID      `gorm:"index;not null" json:"meal_id"`
	ComestibleKind ComestibleKind `gorm:"type:varchar(10);index:idx_portions_comestible;not null" json:"comestible_kind"`
	ComestibleID   uuid.UUID      `gorm:"index:idx_portions_comestible;not null" json:"comestible_id"`
	Quantity       float64        `gorm:"not null" json:"quantity"`
	Calories       float64        `json:"calories"`

	Meal *Meal `gorm:"foreignKey:MealID" json:"-"`
	Timestamp
}
