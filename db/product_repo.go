package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
)

var _ domain.ProductRepository = (*Repository)(nil)

var (
	// ErrNoProductForCode is returned when the organization has no product with the given code.
	ErrNoProductForCode = errors.New("organization has no product with that code")
)

// dbProduct represents a product as stored in the database.
type dbProduct struct {
	ID             uuid.UUID      `db:"id"`              // Unique identifier for the product.
	OrganizationID uuid.UUID      `db:"organization_id"` // Organization the product belongs to.
	Code           string         `db:"code"`            // Stable product code, unique within the organization.
	Name           string         `db:"name"`            // Human-readable name.
	AvailableFrom  sql.NullString `db:"available_from"`  // Window start as "HH:MM:SS", NULL when unbounded.
	AvailableTo    sql.NullString `db:"available_to"`    // Window end as "HH:MM:SS", NULL when unbounded.
	AllowNegative  sql.NullBool   `db:"allow_negative"`  // Negative-stock flag, NULL reads as false.
	CreatedAt      time.Time      `db:"created_at"`      // Row creation time.
	UpdatedAt      time.Time      `db:"updated_at"`      // Last change to the editable columns.
}

// toDomainProduct converts a dbProduct to a domain.Product.
// Unparseable stored times are reported and surfaced as absent rather than failing the read.
func toDomainProduct(dbProduct *dbProduct) *domain.Product {
	return &domain.Product{
		ID:             dbProduct.ID,
		OrganizationID: dbProduct.OrganizationID,
		Code:           dbProduct.Code,
		Name:           dbProduct.Name,
		AvailableFrom:  parseStoredTime(dbProduct.AvailableFrom, dbProduct.Code),
		AvailableTo:    parseStoredTime(dbProduct.AvailableTo, dbProduct.Code),
		AllowNegative:  dbProduct.AllowNegative.Valid && dbProduct.AllowNegative.Bool,
		CreatedAt:      dbProduct.CreatedAt,
		UpdatedAt:      dbProduct.UpdatedAt,
	}
}

// parseStoredTime converts a nullable "HH:MM:SS" column value to an optional TimeOfDay.
func parseStoredTime(value sql.NullString, code string) *domain.TimeOfDay {
	if !value.Valid || value.String == "" {
		return nil
	}
	parsed, err := domain.ParseTimeOfDay(value.String)
	if err != nil {
		log.Printf("warning: could not parse stored time %q for product %s, treating as unset", value.String, code)
		return nil
	}
	return &parsed
}

// storedTime converts an optional TimeOfDay to its nullable column value.
func storedTime(value *domain.TimeOfDay) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{Valid: true, String: value.String()}
}

// GetProducts retrieves all products belonging to the given organization, ordered by code.
func (repo *Repository) GetProducts(orgID uuid.UUID) ([]*domain.Product, error) {
	var dbProducts []*dbProduct
	query := `SELECT id, organization_id, code, name, available_from, available_to, allow_negative, created_at, updated_at
	          FROM products
	          WHERE organization_id = ?
	          ORDER BY code`

	err := repo.dbConn.Select(&dbProducts, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("retrieving products for organization %s: %w", orgID, err)
	}

	domainProducts := make([]*domain.Product, len(dbProducts))
	for i, dbProduct := range dbProducts {
		domainProducts[i] = toDomainProduct(dbProduct)
	}

	return domainProducts, nil
}

// UpdateAvailability updates the availability window and negative-stock flag of the
// product identified by code. Only the three editable columns and the updated_at
// timestamp are written.
func (repo *Repository) UpdateAvailability(orgID uuid.UUID, code string, from, to *domain.TimeOfDay, allowNegative bool) error {
	query := `UPDATE products
	          SET available_from = ?, available_to = ?, allow_negative = ?, updated_at = ?
	          WHERE organization_id = ? AND code = ?`

	result, err := repo.dbConn.Exec(query, storedTime(from), storedTime(to), allowNegative, time.Now(), orgID, code)
	if err != nil {
		return fmt.Errorf("updating availability for %s: %w", code, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update rows affected for %s: %w", code, err)
	}

	if rowsAffected == 0 {
		return ErrNoProductForCode
	}

	return nil
}

// UpsertProduct creates a new product or updates an existing one.
// On conflict the name and availability columns of the existing row are replaced.
func (repo *Repository) UpsertProduct(product *domain.Product) error {
	query := `INSERT INTO products(id, organization_id, code, name, available_from, available_to, allow_negative, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT(organization_id, code) DO UPDATE SET
	              name=excluded.name,
	              available_from=excluded.available_from,
	              available_to=excluded.available_to,
	              allow_negative=excluded.allow_negative,
	              updated_at=excluded.updated_at`

	now := time.Now()
	_, err := repo.dbConn.Exec(query,
		product.ID,
		product.OrganizationID,
		product.Code,
		product.Name,
		storedTime(product.AvailableFrom),
		storedTime(product.AvailableTo),
		product.AllowNegative,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting product %s: %w", product.Code, err)
	}

	return nil
}

// CountProducts returns the number of products belonging to the given organization.
func (repo *Repository) CountProducts(orgID uuid.UUID) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM products WHERE organization_id = ?`

	err := repo.dbConn.Get(&count, query, orgID)
	if err != nil {
		return 0, fmt.Errorf("counting products for organization %s: %w", orgID, err)
	}

	return count, nil
}
