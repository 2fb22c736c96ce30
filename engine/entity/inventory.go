package entity

// Inventory is a last-in-first-out stack of item identifiers that also
// supports removal by value.
type Inventory struct {
	items []string
}

// NewInventory creates an inventory holding items, bottom first.
func NewInventory(items ...string) *Inventory {
	inv := &Inventory{items: make([]string, 0, len(items))}
	inv.items = append(inv.items, items...)
	return inv
}

// Add pushes item on top of the stack.
func (inv *Inventory) Add(item string) {
	inv.items = append(inv.items, item)
}

// Pop removes and returns the top item. Returns ("", false) when empty.
func (inv *Inventory) Pop() (string, bool) {
	if len(inv.items) == 0 {
		return "", false
	}
	top := inv.items[len(inv.items)-1]
	inv.items = inv.items[:len(inv.items)-1]
	return top, true
}

// Peek returns the top item without removing it.
func (inv *Inventory) Peek() (string, bool) {
	if len(inv.items) == 0 {
		return "", false
	}
	return inv.items[len(inv.items)-1], true
}

// Has reports whether at least one copy of item is held.
func (inv *Inventory) Has(item string) bool {
	for _, it := range inv.items {
		if it == item {
			return true
		}
	}
	return false
}

// Remove deletes the oldest copy of item. Returns false if it was not held.
func (inv *Inventory) Remove(item string) bool {
	for i, it := range inv.items {
		if it == item {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns how many copies of item are held.
func (inv *Inventory) Count(item string) int {
	n := 0
	for _, it := range inv.items {
		if it == item {
			n++
		}
	}
	return n
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Items returns a copy of the contents, bottom first.
func (inv *Inventory) Items() []string {
	out := make([]string, len(inv.items))
	copy(out, inv.items)
	return out
}
