package models

// DefaultQuantity is assigned to items added without an explicit quantity.
const DefaultQuantity = 1

// Item is a single entry on a List.
type Item struct {
	// ID is assigned by the store on insertion and is stable for the
	// item's lifetime.
	ID int64 `json:"id"`

	// Content is the free-text body of the item. Never blank.
	Content string `json:"content"`

	// Quantity is always >= 0.
	Quantity int `json:"quantity"`

	// Checked marks the item as done/collected.
	Checked bool `json:"checked"`

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64 `json:"created_at"`
}
