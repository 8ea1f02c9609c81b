// Package core provides fundamental utilities for the avail editor.
// This file contains option functions for customizing log entries.
package core

import (
	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
)

// LogWithContext is an option to add a context map to a log entry.
func LogWithContext(context map[string]any) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.Context = context
		return nil
	}
}

// LogWithProductID is an option to associate a log entry with a product ID.
func LogWithProductID(id uuid.UUID) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.ProductID = &id
		return nil
	}
}
