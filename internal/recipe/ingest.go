package recipe

import (
	"strconv"
	"strings"

	"github.com/rvanes/boodschappen/internal/listsync"
)

// ItemsForList converts extracted ingredient pairs into list inserts. An
// amount that parses as a positive integer becomes the quantity; anything
// else ("1 snufje", "to taste") is folded into the product name as a
// parenthetical suffix so it is never silently dropped.
func ItemsForList(pairs []Ingredient) []listsync.NewItem {
	items := make([]listsync.NewItem, 0, len(pairs))
	for _, p := range pairs {
		item := listsync.NewItem{Product: p.Name}
		amount := strings.TrimSpace(p.Amount)
		if n, err := strconv.ParseInt(amount, 10, 64); err == nil && n > 0 {
			item.Quantity = &n
		} else if amount != "" {
			item.Product = p.Name + " (" + amount + ")"
		}
		items = append(items, item)
	}
	return items
}

// AddToList pushes a recipe's ingredients onto the shopping list as one
// batch, which refreshes the snapshot once for the whole recipe.
func AddToList(list *listsync.Synchronizer, rec *Recipe, addedBy string) error {
	return list.AddItems(ItemsForList(rec.Ingredients()), addedBy)
}
