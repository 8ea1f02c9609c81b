package db

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
)

var _ domain.SettingsRepository = (*Repository)(nil)

// GetOrganization implements the domain.SettingsRepository interface.
// It retrieves the organization ID from the single-row 'app' table.
func (repo *Repository) GetOrganization() (uuid.UUID, error) {
	var orgString string
	query := `SELECT organization_id FROM app LIMIT 1`
	err := repo.dbConn.Get(&orgString, query)

	if err != nil {
		return uuid.Nil, fmt.Errorf("getting organization: %w", err)
	}

	orgID, err := uuid.Parse(orgString)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing stored organization %q: %w", orgString, err)
	}

	return orgID, nil
}

// SetOrganization implements the domain.SettingsRepository interface.
// It updates the organization ID in the 'app' table.
func (repo *Repository) SetOrganization(orgID uuid.UUID) error {
	query := `UPDATE app SET organization_id = ?`
	_, err := repo.dbConn.Exec(query, orgID.String())

	if err != nil {
		return fmt.Errorf("updating organization %s: %w", orgID, err)
	}

	return nil
}

// GetDisplayColumns implements the domain.SettingsRepository interface.
// It retrieves the dashboard's product columns from the 'app' table,
// which are stored as a JSON string, and unmarshals them into a slice of strings.
func (repo *Repository) GetDisplayColumns() ([]string, error) {
	var columnsString string
	query := `SELECT display_columns FROM app LIMIT 1`
	err := repo.dbConn.Get(&columnsString, query)

	if err != nil {
		return nil, fmt.Errorf("getting display columns: %w", err)
	}

	var columns []string
	err = json.Unmarshal([]byte(columnsString), &columns)

	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal display columns JSON: %w", err)
	}

	return columns, nil
}

// SetDisplayColumns implements the domain.SettingsRepository interface.
// It marshals the provided slice of column names into a JSON string
// and updates the 'display_columns' column in the 'app' table.
func (repo *Repository) SetDisplayColumns(columns []string) error {
	marshalledColumns, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to marshal display columns: %w", err)
	}

	query := `UPDATE app SET display_columns = ?`
	_, err = repo.dbConn.Exec(query, marshalledColumns)

	if err != nil {
		return fmt.Errorf("failed to update display columns: %w", err)
	}

	return nil
}
