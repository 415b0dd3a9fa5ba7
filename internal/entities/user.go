package entities

// User represents a row of the users table.
// Email and UserPassword are nil when the client sent null or omitted them.
type User struct {
	ID           int64   `json:"id"`
	Email        *string `json:"email"`
	UserPassword *string `json:"userPassword"` // stored as plain text
}
