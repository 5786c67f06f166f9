// Package models defines the core data structures for the storefront:
// users, categories, products, cart items, and orders.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies the permission level of a user account.
type Role string

const (
	// RoleAdmin grants access to catalog and category management.
	RoleAdmin Role = "admin"
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
)

// User represents a registered account as stored in the users collection.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the login identifier, unique across users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"password"`
	// Role is either RoleAdmin or RoleUser.
	Role Role `json:"role"`
}

// Public returns a password-stripped copy of the user, safe to persist
// as the current-session record.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// PublicUser is the password-stripped view of a User kept under the
// current-session key.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Category groups products in the catalog.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is one catalog entry.
type Product struct {
	ID string `json:"id"`
	// Name is unique across products, compared case-insensitively.
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	// Description is optional; when present it must be at least ten
	// characters long.
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId"`
	// Image holds a base64-encoded product image, if any.
	Image string `json:"imageBase64,omitempty"`
}

// CartItem is one line of a user's cart. Name, Price and Image are
// snapshots of the product taken when it was added; later catalog edits
// do not touch them.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"imageBase64,omitempty"`
}

// Subtotal returns price multiplied by quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is an immutable snapshot of a checked-out cart.
type Order struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Date     time.Time `json:"date"`
	// Items is the cart content copied by value at checkout time.
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
