package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
)

func TestProductRepo_GetProducts(t *testing.T) {
	t.Run("should return products ordered by code", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-B", "Beans", nil, nil, false)
		seedProduct(t, repo, orgID, "SKU-A", "Apples", testTime(t, "09:00:00"), testTime(t, "17:00:00"), true)

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != 2 {
			t.Fatalf("\nwanted:\n2 products\ngot:\n%d", len(got))
		}

		if got[0].Code != "SKU-A" || got[1].Code != "SKU-B" {
			t.Fatalf("\nwanted:\nSKU-A, SKU-B\ngot:\n%s, %s", got[0].Code, got[1].Code)
		}

		if !domain.EqualTimes(got[0].AvailableFrom, testTime(t, "09:00:00")) {
			t.Fatalf("\nwanted:\n09:00:00\ngot:\n%v", got[0].AvailableFrom)
		}

		if !got[0].AllowNegative {
			t.Fatalf("wanted SKU-A to allow negative stock")
		}
	})

	t.Run("should scope products to the organization", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		otherOrg := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "Mine", nil, nil, false)
		seedProduct(t, repo, otherOrg, "SKU-2", "Theirs", nil, nil, false)

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != 1 || got[0].Code != "SKU-1" {
			t.Fatalf("\nwanted:\nonly SKU-1\ngot:\n%d products", len(got))
		}
	})

	t.Run("should surface an unparseable stored time as unset", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "Broken clock", nil, nil, false)

		_, err := repo.dbConn.Exec(`UPDATE products SET available_from = 'not-a-time' WHERE code = 'SKU-1'`)
		if err != nil {
			t.Fatalf("corrupting stored time: %v", err)
		}

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if got[0].AvailableFrom != nil {
			t.Fatalf("\nwanted:\nnil window start\ngot:\n%v", got[0].AvailableFrom)
		}
	})

	t.Run("should read a NULL allow_negative as false", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "Legacy row", nil, nil, true)

		_, err := repo.dbConn.Exec(`UPDATE products SET allow_negative = NULL WHERE code = 'SKU-1'`)
		if err != nil {
			t.Fatalf("clearing allow_negative: %v", err)
		}

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if got[0].AllowNegative {
			t.Fatalf("wanted NULL allow_negative to read as false")
		}
	})
}

func TestProductRepo_UpdateAvailability(t *testing.T) {
	t.Run("should update only the editable columns", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "Apples", nil, nil, false)

		err := repo.UpdateAvailability(orgID, "SKU-1", testTime(t, "08:30:00"), testTime(t, "20:00:00"), true)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		product := got[0]
		if product.Name != "Apples" {
			t.Fatalf("\nwanted:\nname untouched\ngot:\n%s", product.Name)
		}

		if !domain.EqualTimes(product.AvailableFrom, testTime(t, "08:30:00")) {
			t.Fatalf("\nwanted:\n08:30:00\ngot:\n%v", product.AvailableFrom)
		}

		if !domain.EqualTimes(product.AvailableTo, testTime(t, "20:00:00")) {
			t.Fatalf("\nwanted:\n20:00:00\ngot:\n%v", product.AvailableTo)
		}

		if !product.AllowNegative {
			t.Fatalf("wanted allow_negative to be set")
		}
	})

	t.Run("should clear the window with nil times", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "Apples", testTime(t, "09:00:00"), testTime(t, "17:00:00"), false)

		err := repo.UpdateAvailability(orgID, "SKU-1", nil, nil, false)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if got[0].AvailableFrom != nil || got[0].AvailableTo != nil {
			t.Fatalf("\nwanted:\ncleared window\ngot:\n%v - %v", got[0].AvailableFrom, got[0].AvailableTo)
		}
	})

	t.Run("should return ErrNoProductForCode for an unknown code", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		err := repo.UpdateAvailability(uuid.New(), "NOPE", nil, nil, false)
		if !errors.Is(err, ErrNoProductForCode) {
			t.Fatalf("\nwanted:\nErrNoProductForCode\ngot:\n%v", err)
		}
	})
}

func TestProductRepo_UpsertProduct(t *testing.T) {
	t.Run("should replace an existing row on conflict", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "Old name", nil, nil, false)
		seedProduct(t, repo, orgID, "SKU-1", "New name", testTime(t, "10:00:00"), nil, true)

		got, err := repo.GetProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != 1 {
			t.Fatalf("\nwanted:\n1 product\ngot:\n%d", len(got))
		}

		if got[0].Name != "New name" {
			t.Fatalf("\nwanted:\nNew name\ngot:\n%s", got[0].Name)
		}

		if !domain.EqualTimes(got[0].AvailableFrom, testTime(t, "10:00:00")) {
			t.Fatalf("\nwanted:\n10:00:00\ngot:\n%v", got[0].AvailableFrom)
		}
	})
}

func TestProductRepo_CountProducts(t *testing.T) {
	t.Run("should count per organization", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		orgID := uuid.New()
		seedProduct(t, repo, orgID, "SKU-1", "One", nil, nil, false)
		seedProduct(t, repo, orgID, "SKU-2", "Two", nil, nil, false)
		seedProduct(t, repo, uuid.New(), "SKU-3", "Other org", nil, nil, false)

		got, err := repo.CountProducts(orgID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if got != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", got)
		}
	})
}
