package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for managing products and their availability windows.
// All operations are scoped to a single organization.
type ProductRepository interface {
	// GetProducts retrieves all products belonging to the given organization, ordered by code.
	GetProducts(orgID uuid.UUID) ([]*Product, error)

	// UpdateAvailability updates the availability window and negative-stock flag of the
	// product identified by code. Only the three editable columns are written.
	// It returns an error if the organization has no product with that code.
	UpdateAvailability(orgID uuid.UUID, code string, from, to *TimeOfDay, allowNegative bool) error

	// UpsertProduct creates a new product or updates an existing one.
	// Products are keyed by (organization, code); on conflict the name and
	// availability columns are replaced.
	UpsertProduct(product *Product) error

	// CountProducts returns the number of products belonging to the given organization.
	CountProducts(orgID uuid.UUID) (int32, error)
}

// Product represents a sellable item with an optional daily availability window.
// A nil AvailableFrom or AvailableTo means the window is open on that side.
type Product struct {
	ID             uuid.UUID  // Unique identifier for the product.
	OrganizationID uuid.UUID  // Organization the product belongs to.
	Code           string     // Stable product code, unique within the organization.
	Name           string     // Human-readable name.
	AvailableFrom  *TimeOfDay // Start of the daily availability window, nil if unbounded.
	AvailableTo    *TimeOfDay // End of the daily availability window, nil if unbounded.
	AllowNegative  bool       // Whether the product may be sold into negative stock.
	CreatedAt      time.Time  // The time at which the product was created.
	UpdatedAt      time.Time  // The time of the last change to the editable columns.
}

// AvailabilityEdit is a requested change to a product's editable columns, keyed by code.
type AvailabilityEdit struct {
	Code          string     `json:"code"`
	AvailableFrom *TimeOfDay `json:"available_from"`
	AvailableTo   *TimeOfDay `json:"available_to"`
	AllowNegative bool       `json:"allow_negative"`
}

// Changed reports whether applying the edit to the product would alter its stored state.
func (edit AvailabilityEdit) Changed(product *Product) bool {
	if !EqualTimes(edit.AvailableFrom, product.AvailableFrom) {
		return true
	}
	if !EqualTimes(edit.AvailableTo, product.AvailableTo) {
		return true
	}
	return edit.AllowNegative != product.AllowNegative
}
