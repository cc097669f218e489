// Package store persists free-form documents grouped in named collections.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"maintenance-service/models"
)

var (
	// ErrNotFound is returned when no document matches a lookup.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidField is returned for an empty filter field name.
	ErrInvalidField = errors.New("invalid field name")
)

// Store is the document store the handlers talk to. Filters are exact
// string equality on a top-level field.
type Store interface {
	// List returns every document of the collection in insertion order.
	List(ctx context.Context, collection models.Collection) ([]models.Document, error)
	// Find returns every document whose field equals value.
	Find(ctx context.Context, collection models.Collection, field, value string) ([]models.Document, error)
	// FindOne returns the store key of the first document whose field
	// equals value, or ErrNotFound.
	FindOne(ctx context.Context, collection models.Collection, field, value string) (string, models.Document, error)
	// Insert stores doc under a new store-assigned key and returns it.
	Insert(ctx context.Context, collection models.Collection, doc models.Document) (string, error)
	// Merge overwrites the fields of patch on the document at key and
	// leaves every other field untouched.
	Merge(ctx context.Context, collection models.Collection, key string, patch models.Document) error
	// Delete removes the document at key.
	Delete(ctx context.Context, collection models.Collection, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// decodeDocument parses a stored JSON object. Numbers stay json.Number so
// integers beyond float64 precision come back exactly as they were sent.
func decodeDocument(raw []byte) (models.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	doc := models.Document{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = models.Document{}
	}
	return doc, nil
}
