package domain

// Item is static reference data. The core reads it and never edits it.
// Stock is UnlimitedQuantity for ordinary system goods; a finite value is
// only ever set by admin restocking.
type Item struct {
	ID          int    `json:"item_id" db:"id"`
	Name        string `json:"name" db:"name"`
	Category    string `json:"category" db:"category"`
	Grade       string `json:"grade" db:"grade"`
	Effect      string `json:"effect,omitempty" db:"effect"`
	Price       int64  `json:"price" db:"price"`
	Stock       int64  `json:"stock" db:"stock"`
	IsSystem    bool   `json:"is_system" db:"is_system"`
	AttackBonus int    `json:"attack_bonus,omitempty" db:"attack_bonus"`
}

// HasUnlimitedStock reports whether the item can be bought from the system without limit
func (i Item) HasUnlimitedStock() bool {
	return i.Stock == UnlimitedQuantity
}

// SoldOut reports whether a finite system stock is exhausted
func (i Item) SoldOut() bool {
	return i.Stock == 0
}
