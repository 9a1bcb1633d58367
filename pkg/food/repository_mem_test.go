package food

import (
	"Household-Food-Tracker/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memRepository is an in-memory FoodRepository so the cascade and
// conservation logic can be exercised without a database.
type memRepository struct {
	ingredients map[uuid.UUID]entities.Ingredient
	dishes      map[uuid.UUID]entities.Dish
	amounts     map[uuid.UUID]entities.Amount
	meals       map[uuid.UUID]entities.Meal
	portions    map[uuid.UUID]entities.Portion
}

func newMemRepository() *memRepository {
	return &memRepository{
		ingredients: map[uuid.UUID]entities.Ingredient{},
		dishes:      map[uuid.UUID]entities.Dish{},
		amounts:     map[uuid.UUID]entities.Amount{},
		meals:       map[uuid.UUID]entities.Meal{},
		portions:    map[uuid.UUID]entities.Portion{},
	}
}

func (r *memRepository) Transaction(ctx context.Context, fn func(FoodRepository) error) error {
	return fn(r)
}

func (r *memRepository) AddIngredient(ctx context.Context, i *entities.Ingredient) error {
	r.ingredients[i.ID] = *i
	return nil
}

func (r *memRepository) GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &i, nil
}

func (r *memRepository) GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	for _, i := range r.ingredients {
		if i.Name == name {
			out := i
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepository) UpdateIngredient(ctx context.Context, i *entities.Ingredient) error {
	r.ingredients[i.ID] = *i
	return nil
}

func (r *memRepository) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	delete(r.ingredients, id)
	return nil
}

func (r *memRepository) GetIngredients(ctx context.Context, page, limit int) ([]*entities.Ingredient, int64, error) {
	var out []*entities.Ingredient
	for _, i := range r.ingredients {
		ing := i
		out = append(out, &ing)
	}
	return out, int64(len(out)), nil
}

func (r *memRepository) AddDish(ctx context.Context, d *entities.Dish) error {
	r.dishes[d.ID] = *d
	return nil
}

func (r *memRepository) GetDishByID(ctx context.Context, id uuid.UUID) (*entities.Dish, error) {
	d, ok := r.dishes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	amounts, _ := r.GetDishAmounts(ctx, id)
	d.Amounts = amounts
	return &d, nil
}

func (r *memRepository) GetDishForUpdate(ctx context.Context, id uuid.UUID) (*entities.Dish, error) {
	d, ok := r.dishes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *memRepository) UpdateDish(ctx context.Context, d *entities.Dish) error {
	stored := *d
	stored.Amounts = nil
	stored.Cooks = nil
	r.dishes[d.ID] = stored
	return nil
}

func (r *memRepository) DeleteDish(ctx context.Context, id uuid.UUID) error {
	delete(r.dishes, id)
	return nil
}

func (r *memRepository) GetDishes(ctx context.Context, householdID uuid.UUID, page, limit int) ([]*entities.Dish, int64, error) {
	var out []*entities.Dish
	for _, d := range r.dishes {
		if d.HouseholdID == householdID {
			dish := d
			out = append(out, &dish)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memRepository) ReplaceDishCooks(ctx context.Context, d *entities.Dish, cooks []*entities.User) error {
	return nil
}

func (r *memRepository) AddAmount(ctx context.Context, a *entities.Amount) error {
	r.amounts[a.ID] = *a
	return nil
}

func (r *memRepository) GetAmountByID(ctx context.Context, id uuid.UUID) (*entities.Amount, error) {
	a, ok := r.amounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memRepository) UpdateAmount(ctx context.Context, a *entities.Amount) error {
	r.amounts[a.ID] = *a
	return nil
}

func (r *memRepository) DeleteAmount(ctx context.Context, id uuid.UUID) error {
	delete(r.amounts, id)
	return nil
}

func (r *memRepository) GetDishAmounts(ctx context.Context, dishID uuid.UUID) ([]*entities.Amount, error) {
	var out []*entities.Amount
	for _, a := range r.amounts {
		if a.ContainingDishID == dishID {
			amount := a
			out = append(out, &amount)
		}
	}
	return out, nil
}

func (r *memRepository) GetAmountsContaining(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) ([]*entities.Amount, error) {
	var out []*entities.Amount
	for _, a := range r.amounts {
		if a.ContainedKind == kind && a.ContainedID == id {
			amount := a
			out = append(out, &amount)
		}
	}
	return out, nil
}

func (r *memRepository) SumAmountQuantities(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (float64, error) {
	total := 0.0
	for _, a := range r.amounts {
		if a.ContainedKind == kind && a.ContainedID == id {
			total += a.Quantity
		}
	}
	return total, nil
}

func (r *memRepository) AddMeal(ctx context.Context, m *entities.Meal) error {
	stored := *m
	stored.Portions = nil
	r.meals[m.ID] = stored
	return nil
}

func (r *memRepository) GetMealByID(ctx context.Context, id uuid.UUID) (*entities.Meal, error) {
	m, ok := r.meals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	portions, _ := r.GetMealPortions(ctx, id)
	m.Portions = portions
	return &m, nil
}

func (r *memRepository) UpdateMeal(ctx context.Context, m *entities.Meal) error {
	stored := *m
	stored.Portions = nil
	r.meals[m.ID] = stored
	return nil
}

func (r *memRepository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	delete(r.meals, id)
	return nil
}

func (r *memRepository) GetMeals(ctx context.Context, householdID uuid.UUID, from, to *time.Time) ([]*entities.Meal, error) {
	var out []*entities.Meal
	for id, m := range r.meals {
		if m.HouseholdID != householdID {
			continue
		}
		meal, _ := r.GetMealByID(ctx, id)
		out = append(out, meal)
	}
	return out, nil
}

func (r *memRepository) SumMealCalories(ctx context.Context, date time.Time) (float64, error) {
	total := 0.0
	day := date.Format("2006-01-02")
	for _, m := range r.meals {
		if m.Date.Format("2006-01-02") == day {
			total += m.Calories
		}
	}
	return total, nil
}

func (r *memRepository) AddPortion(ctx context.Context, p *entities.Portion) error {
	r.portions[p.ID] = *p
	return nil
}

func (r *memRepository) GetPortionByID(ctx context.Context, id uuid.UUID) (*entities.Portion, error) {
	p, ok := r.portions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memRepository) UpdatePortion(ctx context.Context, p *entities.Portion) error {
	r.portions[p.ID] = *p
	return nil
}

func (r *memRepository) DeletePortion(ctx context.Context, id uuid.UUID) error {
	delete(r.portions, id)
	return nil
}

func (r *memRepository) GetMealPortions(ctx context.Context, mealID uuid.UUID) ([]*entities.Portion, error) {
	var out []*entities.Portion
	for _, p := range r.portions {
		if p.MealID == mealID {
			portion := p
			out = append(out, &portion)
		}
	}
	return out, nil
}

func (r *memRepository) GetPortionsOf(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) ([]*entities.Portion, error) {
	var out []*entities.Portion
	for _, p := range r.portions {
		if p.ComestibleKind == kind && p.ComestibleID == id {
			portion := p
			out = append(out, &portion)
		}
	}
	return out, nil
}

func (r *memRepository) SumPortionQuantities(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (float64, error) {
	total := 0.0
	for _, p := range r.portions {
		if p.ComestibleKind == kind && p.ComestibleID == id {
			total += p.Quantity
		}
	}
	return total, nil
}

func (r *memRepository) GetComestible(ctx context.Context, kind entities.ComestibleKind, id uuid.UUID) (*Comestible, error) {
	switch kind {
	case entities.KindIngredient:
		i, ok := r.ingredients[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return ingredientComestible(&i), nil
	case entities.KindDish:
		d, ok := r.dishes[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return dishComestible(&d), nil
	}
	return nil, gorm.ErrRecordNotFound
}

// memUserRepository backs the services that resolve a user's household.
type memUserRepository struct {
	users map[uuid.UUID]entities.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: map[uuid.UUID]entities.User{}}
}

func (r *memUserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepository) UpdateUser(ctx context.Context, u *entities.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	var out []*entities.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			user := u
			out = append(out, &user)
		}
	}
	return out, nil
}
