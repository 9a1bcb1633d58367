package household

import (
	"Household-Food-Tracker/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	HouseholdRepository interface {
		CreateHousehold(ctx context.Context, household *entities.Household) error
		GetHouseholdByID(ctx context.Context, id uuid.UUID) (*entities.Household, error)
		UpdateHousehold(ctx context.Context, household *entities.Household) error
	}

	householdRepository struct {
		db *gorm.DB
	}
)

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) CreateHousehold(ctx context.Context, household *entities.Household) error {
	return r.db.WithContext(ctx).Create(household).Error
}

func (r *householdRepository) GetHouseholdByID(ctx context.Context, id uuid.UUID) (*entities.Household, error) {
	var household entities.Household
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) UpdateHousehold(ctx context.Context, household *entities.Household) error {
	return r.db.WithContext(ctx).Save(household).Error
}
