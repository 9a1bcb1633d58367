package food

import (
	"Household-Food-Tracker/entities"
	"context"

	"github.com/google/uuid"
)

// wouldCreateCycle reports whether putting the dish containedID inside
// containingDishID would create a containment cycle. It walks the
// sub-dish graph below containedID looking for containingDishID; the
// walk is bounded because existing edges are already acyclic. Direct
// self-containment is checked separately so it can get its own error.
func wouldCreateCycle(ctx context.Context, repo FoodRepository, containingDishID, containedDishID uuid.UUID) (bool, error) {
	stack := []uuid.UUID{containedDishID}
	seen := map[uuid.UUID]bool{}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == containingDishID {
			return true, nil
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		amounts, err := repo.GetDishAmounts(ctx, id)
		if err != nil {
			return false, err
		}
		for _, amount := range amounts {
			if amount.ContainedKind == entities.KindDish {
				stack = append(stack, amount.ContainedID)
			}
		}
	}
	return false, nil
}
