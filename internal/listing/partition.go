// Package listing splits a product grid into the visible first page and the
// items deferred behind "load more", optionally narrowed to one price tag.
package listing

// DefaultPageSize is the number of items visible before "load more".
const DefaultPageSize = 9

// Visibility is the display state of one item.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

// Item is one card in the grid. PriceTag is the price exactly as the card
// publishes it; filtering compares it textually.
type Item[T any] struct {
	PriceTag string
	Value    T
}

// Result is a partitioned grid.
type Result[T any] struct {
	// Shown are the visible items, in input order.
	Shown []Item[T]
	// Hidden are matching items deferred behind "load more", in input order.
	Hidden []Item[T]
	// Excluded are items that fail the price filter. They are never revealed.
	Excluded []Item[T]
	// States holds the visibility of every input item by input index.
	States  []Visibility
	HasMore bool
}

// Partition shows the first pageSize items that match requestedPrice and
// hides the rest. A nil requestedPrice matches everything; otherwise an item
// matches only when its PriceTag equals *requestedPrice byte for byte, so
// "499" and "499.00" are different tags. A non-positive pageSize means
// DefaultPageSize.
func Partition[T any](items []Item[T], requestedPrice *string, pageSize int) Result[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	res := Result[T]{
		Shown:    []Item[T]{},
		Hidden:   []Item[T]{},
		Excluded: []Item[T]{},
		States:   make([]Visibility, len(items)),
	}
	for i, it := range items {
		if requestedPrice != nil && it.PriceTag != *requestedPrice {
			res.Excluded = append(res.Excluded, it)
			continue
		}
		if len(res.Shown) < pageSize {
			res.Shown = append(res.Shown, it)
			res.States[i] = Visible
			continue
		}
		res.Hidden = append(res.Hidden, it)
	}
	res.HasMore = len(res.Hidden) > 0
	return res
}
