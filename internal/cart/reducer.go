// internal/cart/reducer.go

// Package cart implements the shopping cart state machine and its persistence.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/models"
)

// MaxLineQuantity caps the quantity of a single line. Transitions that would
// exceed it leave the state unchanged.
const MaxLineQuantity = 99

type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// State is the cart line sequence plus its derived totals. Total and ItemCount
// are only ever produced by Reduce and always agree with Lines.
type State struct {
	Lines     []Line          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type ActionType string

const (
	ActionAdd            ActionType = "ADD_ITEM"
	ActionRemove         ActionType = "REMOVE_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionClear          ActionType = "CLEAR_CART"
	ActionLoad           ActionType = "LOAD_CART"
)

type Action struct {
	Type      ActionType
	Product   models.Product
	ProductID string
	Quantity  int
	Lines     []Line
}

func Add(p models.Product) Action { return Action{Type: ActionAdd, Product: p, Quantity: 1} }

// AddN is n consecutive adds of p collapsed into one transition.
func AddN(p models.Product, n int) Action { return Action{Type: ActionAdd, Product: p, Quantity: n} }

func Remove(id string) Action { return Action{Type: ActionRemove, ProductID: id} }

func SetQuantity(id string, q int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: id, Quantity: q}
}

func Clear() Action { return Action{Type: ActionClear} }

func Load(lines []Line) Action { return Action{Type: ActionLoad, Lines: lines} }

// Reduce is the pure transition function. It never mutates state.
func Reduce(state State, action Action) State {
	var lines []Line

	switch action.Type {
	case ActionAdd:
		if action.Quantity < 1 || action.Quantity > MaxLineQuantity {
			return state
		}
		lines = copyLines(state.Lines)
		if i := indexOf(lines, action.Product.ID); i >= 0 {
			if lines[i].Quantity+action.Quantity > MaxLineQuantity {
				return state
			}
			lines[i].Quantity += action.Quantity
		} else {
			lines = append(lines, Line{Product: action.Product, Quantity: action.Quantity})
		}

	case ActionRemove:
		lines = make([]Line, 0, len(state.Lines))
		for _, l := range state.Lines {
			if l.Product.ID != action.ProductID {
				lines = append(lines, l)
			}
		}

	case ActionUpdateQuantity:
		if action.Quantity <= 0 {
			return Reduce(state, Remove(action.ProductID))
		}
		if action.Quantity > MaxLineQuantity {
			return state
		}
		lines = copyLines(state.Lines)
		if i := indexOf(lines, action.ProductID); i >= 0 {
			lines[i].Quantity = action.Quantity
		}

	case ActionClear:
		lines = []Line{}

	case ActionLoad:
		lines = make([]Line, 0, len(action.Lines))
		for _, l := range action.Lines {
			if l.Quantity >= 1 && l.Quantity <= MaxLineQuantity {
				lines = append(lines, l)
			}
		}

	default:
		return state
	}

	return withTotals(lines)
}

func withTotals(lines []Line) State {
	total := decimal.Zero
	var count int
	for _, l := range lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}
	return State{Lines: lines, Total: total, ItemCount: count}
}

// CanAdd reports whether n more units of id fit under MaxLineQuantity.
func (s State) CanAdd(id string, n int) bool {
	l, _ := s.Find(id)
	return n >= 1 && n <= MaxLineQuantity-l.Quantity
}

func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

func (s State) Find(id string) (Line, bool) {
	if i := indexOf(s.Lines, id); i >= 0 {
		return s.Lines[i], true
	}
	return Line{}, false
}

func indexOf(lines []Line, id string) int {
	for i, l := range lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func emptyState() State {
	return withTotals([]Line{})
}
