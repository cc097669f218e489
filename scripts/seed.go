package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"maintenance-service/dto"
	"maintenance-service/models"
	"maintenance-service/store"
)

// Seed inserts every document of the seed file into its collection.
func Seed(ctx context.Context, s store.Store, path string, logger *zap.SugaredLogger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seed dto.SeedFileDto
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	batches := []struct {
		collection models.Collection
		docs       []map[string]any
	}{
		{models.RequestsCollection, seed.Requests},
		{models.TenantsCollection, seed.Tenants},
	}
	for _, b := range batches {
		for _, doc := range b.docs {
			if _, err := s.Insert(ctx, b.collection, doc); err != nil {
				return err
			}
		}
		logger.Infof("seeded %d documents into %s", len(b.docs), b.collection)
	}
	return nil
}
