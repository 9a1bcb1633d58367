package entities

import (
	"time"

	"github.com/google/uuid"
)

// Unit is the unit a quantity is measured in. "items" covers eggs,
// garlic cloves and similar countables.
type Unit string

const (
	UnitGrams       Unit = "g"
	UnitMillilitres Unit = "ml"
	UnitItems       Unit = "items"
)

// ComestibleKind discriminates the two kinds of comestible an Amount or
// Portion can reference.
type ComestibleKind string

const (
	KindIngredient ComestibleKind = "ingredient"
	KindDish       ComestibleKind = "dish"
)

// Ingredient is a named reusable foodstuff. Calories is the calorie
// total for the reference Quantity, so density = Calories / Quantity.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Quantity float64   `gorm:"not null" json:"quantity"`
	Unit     Unit      `gorm:"type:varchar(5);not null" json:"unit"`
	Calories float64   `gorm:"not null" json:"calories"`

	Timestamp
}

// Dish is a cooked composite. Calories is derived from its Amounts and
// kept consistent by the cascade; it is zero until amounts are attached
// and the dish is re-saved.
type Dish struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	Unit        Unit      `gorm:"type:varchar(5);not null" json:"unit"`
	DateCooked  time.Time `gorm:"type:date;not null" json:"date_cooked"`
	HouseholdID uuid.UUID `gorm:"index" json:"household_id"`
	RecipeURL   string    `json:"recipe_url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Calories    float64   `json:"calories"`

	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	Cooks     []*User    `gorm:"many2many:dish_cooks" json:"cooks,omitempty"`
	Amounts   []*Amount  `gorm:"foreignKey:ContainingDishID" json:"amounts,omitempty"`
	Timestamp
}

// Label identifies a dish in user-facing messages; the date
// disambiguates dishes cooked more than once.
func (d *Dish) Label() string {
	return d.Name + " (" + d.DateCooked.Format("2006-01-02") + ")"
}

// PrettyCooks formats the cook list as "a, b and c".
func (d *Dish) PrettyCooks() string {
	names := make([]string, 0, len(d.Cooks))
	for _, c := range d.Cooks {
		names = append(names, c.Name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " and " + names[len(names)-1]
}

// Amount is a quantity of one comestible contained within one dish.
// Calories is derived from the contained comestible's calorie density.
type Amount struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ContainingDishID uuid.UUID      `gorm:"index;not null" json:"containing_dish_id"`
	ContainedKind    ComestibleKind `gorm:"type:varchar(10);index:idx_amounts_contained;not null" json:"contained_kind"`
	ContainedID      uuid.UUID      `gorm:"index:idx_amounts_contained;not null" json:"contained_id"`
	Quantity         float64        `gorm:"not null" json:"quantity"`
	Calories         float64        `json:"calories"`

	ContainingDish *Dish `gorm:"foreignKey:ContainingDishID" json:"-"`
	Timestamp
}
