package avail

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shelfline/avail/core"
	"github.com/shelfline/avail/domain"
)

// ErrUnknownProductCode is returned when an availability edit names a code the
// organization has no product for.
var ErrUnknownProductCode = errors.New("no product with that code")

// Products returns the organization's product listing, served from cache while fresh.
func (editor *Editor) Products() ([]*domain.Product, error) {
	if products, ok := editor.cache.get(); ok {
		return products, nil
	}

	products, err := editor.Repo.GetProducts(editor.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("fetching products : %w", err)
	}
	editor.cache.set(products)
	return products, nil
}

// ProductCount reports how many products the organization has.
func (editor *Editor) ProductCount() (int32, error) {
	count, err := editor.Repo.CountProducts(editor.OrganizationID)
	if err != nil {
		return 0, fmt.Errorf("counting products : %w", err)
	}
	return count, nil
}

// SaveAvailability applies the given edits, skipping rows whose stored state already
// matches. Changed rows write only the availability window and negative-stock flag.
// It returns the number of rows written; zero changes is not an error.
func (editor *Editor) SaveAvailability(edits []domain.AvailabilityEdit) (int, error) {
	products, err := editor.Products()
	if err != nil {
		return 0, err
	}

	byCode := make(map[string]*domain.Product, len(products))
	for _, product := range products {
		byCode[product.Code] = product
	}

	// Rows written before a failing edit must not be served from the
	// pre-save listing, so the cache is invalidated on every exit.
	updated := 0
	defer func() {
		if updated > 0 {
			editor.cache.invalidate()
		}
	}()

	for _, edit := range edits {
		product, ok := byCode[edit.Code]
		if !ok {
			return updated, fmt.Errorf("saving availability for %q : %w", edit.Code, ErrUnknownProductCode)
		}
		if !edit.Changed(product) {
			continue
		}

		err := editor.Repo.UpdateAvailability(editor.OrganizationID, edit.Code, edit.AvailableFrom, edit.AvailableTo, edit.AllowNegative)
		if err != nil {
			return updated, fmt.Errorf("saving availability for %q : %w", edit.Code, err)
		}
		updated++

		editor.WriteLog("INFO",
			fmt.Sprintf("Change detected for %q: Start: %v, End: %v, Allow Negative: %v",
				edit.Code, edit.AvailableFrom, edit.AvailableTo, edit.AllowNegative),
			core.LogWithProductID(product.ID),
		)
	}

	if updated > 0 {
		editor.WriteLog("INFO", fmt.Sprintf("Saved changes for %d product(s)", updated),
			core.LogWithContext(map[string]any{"updated": updated}))
	} else {
		editor.WriteLog("INFO", "No changes to save")
	}

	return updated, nil
}

// ImportProducts upserts the given products into the organization's catalog, assigning
// IDs where missing, and invalidates the listing cache.
func (editor *Editor) ImportProducts(products []*domain.Product) (int, error) {
	imported := 0
	for _, product := range products {
		if product.Code == "" {
			return imported, errors.New("product is missing a code")
		}
		if product.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return imported, fmt.Errorf("generating new uuid : %w", err)
			}
			product.ID = id
		}
		product.OrganizationID = editor.OrganizationID

		if err := editor.Repo.UpsertProduct(product); err != nil {
			return imported, fmt.Errorf("importing product %q : %w", product.Code, err)
		}
		imported++
	}

	if imported > 0 {
		editor.cache.invalidate()
		editor.WriteLog("INFO", fmt.Sprintf("Imported %d product(s)", imported))
	}

	return imported, nil
}
