package domain

// Basket is a named, reusable set of desired additions: item key -> quantity.
// Baskets never reference lots; applying one replays plain Add operations.
// Entries are always positive; zero and negative quantities are dropped on save.
type Basket map[string]int

// Clone returns an independent copy.
func (b Basket) Clone() Basket {
	out := make(Basket, len(b))
	for item, qty := range b {
		out[item] = qty
	}
	return out
}
