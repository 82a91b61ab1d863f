package models

// List represents a shared shopping/todo list.
//
// The ID doubles as the access token: it is the only credential needed to
// view or edit the list, so it must be globally unique and unguessable
// (UUID v4). Name is immutable after creation.
type List struct {
	// ID is the opaque, shareable token identifying the list (UUID format).
	ID string `json:"id"`

	// Name is the display name of the list (e.g., "Groceries").
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the list was created.
	CreatedAt int64 `json:"created_at"`

	// Items holds the list's entries in insertion order.
	Items []Item `json:"items"`
}
