package products

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrDuplicateID     = errors.New("duplicate product id")
	ErrInvalidName     = errors.New("product name is required")
	ErrInvalidQuantity = errors.New("product quantity must not be negative")
	ErrInvalidPrice    = errors.New("product price must not be negative")
)

const (
	EventsQueue  = "products.events"
	EventCreated = "product_created"
	EventUpdated = "product_updated"
	EventDeleted = "product_deleted"
)

// Product is the persisted document shape. UpdatedAt stays nil until the
// first successful update.
type Product struct {
	ID        string     `json:"id" bson:"id" example:"a47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Name      string     `json:"name" bson:"name" example:"Widget"`
	Quantity  int64      `json:"quantity" bson:"quantity" example:"10"`
	Price     float64    `json:"price" bson:"price" example:"9.99"`
	Status    bool       `json:"status" bson:"status" example:"true"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" example:"2026-02-24T12:00:00Z"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// CreateProduct carries the fields needed to create a product. ID is
// optional; a v4 UUID is generated when it is nil.
type CreateProduct struct {
	ID       *uuid.UUID
	Name     string
	Quantity int64
	Price    float64
	Status   *bool
}

// ProductPatch is a partial update: nil means "not supplied", so only
// non-nil fields are applied. UpdatedAt is stamped server-side unless the
// caller provides one.
type ProductPatch struct {
	Name      *string
	Quantity  *int64
	Price     *float64
	Status    *bool
	UpdatedAt *time.Time
}

// PriceRange filters products by price. Both bounds are optional and
// strictly exclusive: min < price < max.
type PriceRange struct {
	Min *float64
	Max *float64
}

type ProductEvent struct {
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error is a domain error carrying the HTTP status and the message the
// boundary layer renders as {"error": message}. Kind is a sentinel usable
// with errors.Is.
type Error struct {
	Status  int
	Message string
	Kind    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFoundError(id uuid.UUID) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("product not found with id: %s", id),
		Kind:    ErrNotFound,
	}
}

func DuplicateIDError(id uuid.UUID) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("a product with id %s already exists", id),
		Kind:    ErrDuplicateID,
	}
}
