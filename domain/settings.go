package domain

import "github.com/google/uuid"

// SettingsRepository defines the interface for application-level settings that are
// persisted alongside the product data, such as the default organization and the
// columns shown by the dashboard.
type SettingsRepository interface {
	// GetOrganization retrieves the organization the editor operates on.
	GetOrganization() (uuid.UUID, error)

	// SetOrganization updates the organization the editor operates on.
	SetOrganization(orgID uuid.UUID) error

	// GetDisplayColumns retrieves the product columns shown by the dashboard.
	GetDisplayColumns() ([]string, error)

	// SetDisplayColumns updates the product columns shown by the dashboard.
	SetDisplayColumns(columns []string) error
}
