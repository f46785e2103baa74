// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrCustomerNotFound indicates that the customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrEmailAlreadyExists indicates that a customer with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Customer holds a bank customer profile.
type Customer struct {
	ID             int32     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCustomerParams is the input data to persist a new customer.
type CreateCustomerParams struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	HashedPassword string
}
