package db

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	repo := NewEditorRepo(dbConn)

	teardown := func() {
		repo.Close()
		os.Remove(tempFile.Name())
	}

	return repo, teardown
}

func testTime(t *testing.T, value string) *domain.TimeOfDay {
	t.Helper()

	parsed, err := domain.ParseTimeOfDay(value)
	if err != nil {
		t.Fatalf("parsing test time %q: %v", value, err)
	}
	return &parsed
}

func seedProduct(t *testing.T, repo *Repository, orgID uuid.UUID, code string, name string, from, to *domain.TimeOfDay, allowNegative bool) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("creating uuid: %v", err)
	}

	product := &domain.Product{
		ID:             id,
		OrganizationID: orgID,
		Code:           code,
		Name:           name,
		AvailableFrom:  from,
		AvailableTo:    to,
		AllowNegative:  allowNegative,
	}

	err = repo.UpsertProduct(product)
	if err != nil {
		t.Fatalf("upserting product: %v", err)
	}
	return id
}
