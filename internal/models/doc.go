// Package models defines the core domain models for the list backend.
//
// # Models
//
//   - List: a shared shopping/todo list, addressed by an opaque token
//   - Item: a single entry belonging to exactly one List
//
// Lists are unnamed-access: anyone holding the list token may read and
// mutate it. There are no user accounts.
//
// # Design Principles
//
// 1. **Token addressing**: the List ID is the shareable token (UUID v4)
// 2. **Exclusive ownership**: an Item never outlives its List and is only
// reachable through it
// 3. **Avoid circular references**: Items carry no back-pointer to their List
package models
