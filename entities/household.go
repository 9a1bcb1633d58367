package entities

import (
	"github.com/google/uuid"
)

// A household groups the users who cook and eat together. Dishes and
// meals belong to exactly one household.
type Household struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	AdminID uuid.UUID `json:"admin_id"`

	Admin   *User   `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Members []*User `gorm:"foreignKey:HouseholdID" json:"members,omitempty"`
	Timestamp
}
