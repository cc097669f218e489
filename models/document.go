package models

import "time"

type Collection string

const (
	RequestsCollection Collection = "requests"
	TenantsCollection  Collection = "tenants"
)

// Field names the service filters on.
const (
	RequestIDField       = "id"
	ApartmentNumberField = "apartmentNumber"
	TenantIDField        = "tenant_id"
)

// Document is a free-form JSON object as sent by the client.
type Document map[string]any

// DocumentRecord is the row backing a Document in the relational store.
// Key is assigned by the store and never merged into Data.
type DocumentRecord struct {
	Key        string     `gorm:"primaryKey;type:uuid"`
	Collection Collection `gorm:"type:text;not null;index:idx_documents_collection_created,priority:1"`
	Data       string     `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time  `gorm:"index:idx_documents_collection_created,priority:2"`
	UpdatedAt  time.Time
}

func (DocumentRecord) TableName() string {
	return "documents"
}
