package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type GroceryState struct {
	ShoppingList []model.ShoppingListItem
	ListSummary  model.ShoppingListSummary
	Predictions  []model.GroceryPrediction
	Inventory    []model.InventoryItem
	Loading      bool
	Err          string
}

type GroceryAction interface{ isGroceryAction() }

type SetShoppingList struct{ List *model.ShoppingList }

type SetPredictions struct{ Predictions []model.GroceryPrediction }

type SetInventory struct{ Items []model.InventoryItem }

// UpdateInventoryItem patches one inventory row by id; a missing id is
// a logged no-op.
type UpdateInventoryItem struct {
	ID       string
	Quantity float64
}

type ToggleItem struct{ ID string }

type SetGroceryLoading struct{ Loading bool }

type SetGroceryError struct{ Message string }

type ClearGroceryError struct{}

func (SetShoppingList) isGroceryAction()     {}
func (SetPredictions) isGroceryAction()      {}
func (SetInventory) isGroceryAction()        {}
func (UpdateInventoryItem) isGroceryAction() {}
func (ToggleItem) isGroceryAction()          {}
func (SetGroceryLoading) isGroceryAction()   {}
func (SetGroceryError) isGroceryAction()     {}
func (ClearGroceryError) isGroceryAction()   {}

type GroceryStore = Store[GroceryState, GroceryAction]

func NewGroceryStore(log zerolog.Logger) *GroceryStore {
	return New(GroceryState{}, ReduceGrocery, log)
}

func ReduceGrocery(s GroceryState, action GroceryAction) (GroceryState, string) {
	switch a := action.(type) {
	case SetShoppingList:
		s.ShoppingList = a.List.Items
		s.ListSummary = a.List.Summary
		s.Loading = false
		return s, ""

	case SetPredictions:
		s.Predictions = a.Predictions
		s.Loading = false
		return s, ""

	case SetInventory:
		s.Inventory = a.Items
		s.Loading = false
		return s, ""

	case UpdateInventoryItem:
		idx := -1
		for i, item := range s.Inventory {
			if item.ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s, fmt.Sprintf("update inventory: item %q unknown", a.ID)
		}
		next := make([]model.InventoryItem, len(s.Inventory))
		copy(next, s.Inventory)
		next[idx].Quantity = a.Quantity
		s.Inventory = next
		s.Loading = false
		return s, ""

	case ToggleItem:
		idx := -1
		for i, item := range s.Inventory {
			if item.ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s, fmt.Sprintf("toggle item: item %q unknown", a.ID)
		}
		next := make([]model.InventoryItem, len(s.Inventory))
		copy(next, s.Inventory)
		next[idx].Checked = !next[idx].Checked
		s.Inventory = next
		return s, ""

	case SetGroceryLoading:
		s.Loading = a.Loading
		return s, ""

	case SetGroceryError:
		s.Err = a.Message
		s.Loading = false
		return s, ""

	case ClearGroceryError:
		s.Err = ""
		return s, ""
	}
	return s, ""
}
