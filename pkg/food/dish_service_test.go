package food

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplyAmountEditsAddsAndComputes(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, _ := seedKitchen(t)

	err := applyAmountEdits(ctx, repo, soup, []domain.AmountEdit{{
		ContainedKind: "ingredient",
		ContainedID:   flour.ID.String(),
		Quantity:      20,
	}})
	require.NoError(t, err)
	require.NoError(t, recomputeDish(ctx, repo, soup.ID))

	got, err := repo.GetDishByID(ctx, soup.ID)
	require.NoError(t, err)
	require.Len(t, got.Amounts, 2)
	assert.Equal(t, 52.5, got.Calories)
}

func TestApplyAmountEditsRejectsSelfContainment(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, _ := seedKitchen(t)

	// a valid row in the same batch must not survive the rejection
	err := applyAmountEdits(ctx, repo, soup, []domain.AmountEdit{
		{
			ContainedKind: "ingredient",
			ContainedID:   flour.ID.String(),
			Quantity:      20,
		},
		{
			ContainedKind: "dish",
			ContainedID:   soup.ID.String(),
			Quantity:      10,
		},
	})
	assert.ErrorIs(t, err, domain.ErrSelfContainment)

	amounts, err := repo.GetDishAmounts(ctx, soup.ID)
	require.NoError(t, err)
	assert.Len(t, amounts, 1)
}

func TestApplyAmountEditsRejectsCycle(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, _ := seedKitchen(t)

	stew := &entities.Dish{
		ID:       uuid.New(),
		Name:     "stew",
		Quantity: 1000,
		Unit:     entities.UnitGrams,
	}
	require.NoError(t, repo.AddDish(ctx, stew))
	require.NoError(t, repo.AddAmount(ctx, &entities.Amount{
		ID:               uuid.New(),
		ContainingDishID: stew.ID,
		ContainedKind:    entities.KindDish,
		ContainedID:      soup.ID,
		Quantity:         100,
	}))

	err := applyAmountEdits(ctx, repo, soup, []domain.AmountEdit{{
		ContainedKind: "dish",
		ContainedID:   stew.ID.String(),
		Quantity:      10,
	}})
	assert.ErrorIs(t, err, domain.ErrContainmentCycle)
}

func TestApplyAmountEditsJointOverdraw(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, _ := seedKitchen(t)

	// soup holds 500 g with 100 g already portioned out
	outer1 := &entities.Dish{ID: uuid.New(), Name: "pie", Quantity: 900, Unit: entities.UnitGrams}
	require.NoError(t, repo.AddDish(ctx, outer1))

	err := applyAmountEdits(ctx, repo, outer1, []domain.AmountEdit{
		{ContainedKind: "dish", ContainedID: soup.ID.String(), Quantity: 250},
		{ContainedKind: "dish", ContainedID: soup.ID.String(), Quantity: 250},
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Batch)
	assert.Equal(t, 400.0, insufficient.Available)

	amounts, err := repo.GetDishAmounts(ctx, outer1.ID)
	require.NoError(t, err)
	assert.Empty(t, amounts)
}

func TestApplyAmountEditsEditGetsSavedCredit(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, _ := seedKitchen(t)

	outer := &entities.Dish{ID: uuid.New(), Name: "pie", Quantity: 900, Unit: entities.UnitGrams}
	require.NoError(t, repo.AddDish(ctx, outer))
	amount := &entities.Amount{
		ID:               uuid.New(),
		ContainingDishID: outer.ID,
		ContainedKind:    entities.KindDish,
		ContainedID:      soup.ID,
		Quantity:         300,
	}
	require.NoError(t, repo.AddAmount(ctx, amount))

	// remaining is 500 - 100 portioned - 300 contained = 100, but the
	// row being edited gets its saved 300 back
	err := applyAmountEdits(ctx, repo, outer, []domain.AmountEdit{{
		ID:            amount.ID.String(),
		ContainedKind: "dish",
		ContainedID:   soup.ID.String(),
		Quantity:      400,
	}})
	require.NoError(t, err)

	got, err := repo.GetAmountByID(ctx, amount.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, got.Quantity)

	err = applyAmountEdits(ctx, repo, outer, []domain.AmountEdit{{
		ID:            amount.ID.String(),
		ContainedKind: "dish",
		ContainedID:   soup.ID.String(),
		Quantity:      401,
	}})
	require.Error(t, err)
	assert.Equal(t,
		"This portion's quantity is greater than the remaining quantity of the dish (400 g).",
		err.Error())
}

func TestApplyAmountEditsDeleteRow(t *testing.T) {
	ctx := context.Background()
	repo, flour, soup, _ := seedKitchen(t)

	amounts, err := repo.GetDishAmounts(ctx, soup.ID)
	require.NoError(t, err)
	require.Len(t, amounts, 1)

	err = applyAmountEdits(ctx, repo, soup, []domain.AmountEdit{{
		ID:            amounts[0].ID.String(),
		ContainedKind: "ingredient",
		ContainedID:   flour.ID.String(),
		Delete:        true,
	}})
	require.NoError(t, err)
	require.NoError(t, recomputeDish(ctx, repo, soup.ID))

	got, err := repo.GetDishByID(ctx, soup.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Amounts)
	assert.Equal(t, 0.0, got.Calories)
}

// seedHousehold returns a kitchen whose dishes belong to a household
// with one member, plus a dish service bound to that member.
func seedHousehold(t *testing.T) (*memRepository, DishService, *entities.Dish, string) {
	t.Helper()
	ctx := context.Background()
	repo, _, soup, _ := seedKitchen(t)

	householdID := uuid.New()
	soup.HouseholdID = householdID
	require.NoError(t, repo.UpdateDish(ctx, soup))

	users := newMemUserRepository()
	member := &entities.User{ID: uuid.New(), Name: "alice", HouseholdID: &householdID}
	require.NoError(t, users.CreateUser(ctx, member))

	return repo, NewDishService(repo, users, nil), soup, member.ID.String()
}

func TestMultiplyDishScalesEverything(t *testing.T) {
	ctx := context.Background()
	repo, s, soup, userID := seedHousehold(t)

	res, err := s.MultiplyDish(ctx, soup.ID.String(), domain.MultiplyDishRequest{
		Operation: "multiply",
		Factor:    2,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.Quantity)
	assert.Equal(t, 75.0, res.Calories)

	amounts, err := repo.GetDishAmounts(ctx, soup.ID)
	require.NoError(t, err)
	require.Len(t, amounts, 1)
	assert.Equal(t, 100.0, amounts[0].Quantity)
	assert.Equal(t, 75.0, amounts[0].Calories)
}

func TestMultiplyDishDivide(t *testing.T) {
	ctx := context.Background()
	_, s, soup, userID := seedHousehold(t)

	res, err := s.MultiplyDish(ctx, soup.ID.String(), domain.MultiplyDishRequest{
		Operation: "divide",
		Factor:    2,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, res.Quantity)
	assert.Equal(t, 18.75, res.Calories)
}

func TestMultiplyDishRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	_, s, soup, userID := seedHousehold(t)

	_, err := s.MultiplyDish(ctx, soup.ID.String(), domain.MultiplyDishRequest{
		Operation: "multiply",
		Factor:    0,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)

	_, err = s.MultiplyDish(ctx, soup.ID.String(), domain.MultiplyDishRequest{
		Operation: "add",
		Factor:    2,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestUpdateDishAppliesRecipeURL(t *testing.T) {
	ctx := context.Background()
	_, s, soup, userID := seedHousehold(t)

	res, err := s.UpdateDish(ctx, soup.ID.String(), domain.UpdateDishRequest{
		RecipeURL: "https://example.com/recipes/soup",
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/recipes/soup", res.RecipeURL)

	// omitted on a later edit, the URL stays put
	res, err = s.UpdateDish(ctx, soup.ID.String(), domain.UpdateDishRequest{
		Name: "onion soup",
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "onion soup", res.Name)
	assert.Equal(t, "https://example.com/recipes/soup", res.RecipeURL)
}

func TestGetRemainingQuantityScopedToHousehold(t *testing.T) {
	ctx := context.Background()
	repo, _, soup, _ := seedKitchen(t)

	householdID := uuid.New()
	soup.HouseholdID = householdID
	require.NoError(t, repo.UpdateDish(ctx, soup))

	users := newMemUserRepository()
	member := &entities.User{ID: uuid.New(), Name: "alice", HouseholdID: &householdID}
	require.NoError(t, users.CreateUser(ctx, member))
	otherHousehold := uuid.New()
	neighbour := &entities.User{ID: uuid.New(), Name: "bob", HouseholdID: &otherHousehold}
	require.NoError(t, users.CreateUser(ctx, neighbour))

	s := NewDishService(repo, users, nil)

	res, err := s.GetRemainingQuantity(ctx, soup.ID.String(), member.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 400.0, res.RemainingQuantity)

	_, err = s.GetRemainingQuantity(ctx, soup.ID.String(), neighbour.ID.String())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestDuplicateDishCopiesRecipe(t *testing.T) {
	ctx := context.Background()
	repo, s, soup, userID := seedHousehold(t)

	res, err := s.DuplicateDish(ctx, soup.ID.String(), domain.DuplicateDishRequest{
		DateCooked: "2012-02-01",
	}, userID)
	require.NoError(t, err)
	assert.NotEqual(t, soup.ID.String(), res.ID)
	assert.Equal(t, "soup", res.Name)
	assert.Equal(t, "2012-02-01", res.DateCooked)
	assert.Equal(t, 37.5, res.Calories)
	assert.Equal(t, "", res.Cooks)

	id, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	amounts, err := repo.GetDishAmounts(ctx, id)
	require.NoError(t, err)
	assert.Len(t, amounts, 1)
}

func TestDeleteDishRecomputesSurvivors(t *testing.T) {
	ctx := context.Background()
	repo, s, soup, userID := seedHousehold(t)

	// the meal that ate the soup drops to zero once the soup is gone
	require.NoError(t, s.DeleteDish(ctx, soup.ID.String(), userID))

	_, err := repo.GetDishByID(ctx, soup.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, m := range repo.meals {
		assert.Equal(t, 0.0, m.Calories)
	}
	assert.Empty(t, repo.portions)
	assert.Empty(t, repo.amounts)
}
