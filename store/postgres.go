package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maintenance-service/models"
)

// PostgresStore keeps each document as a jsonb row in the documents table.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects with dsn. The connection pool is owned by the
// returned store and released by Close.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates or updates the documents table.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	return p.db.WithContext(ctx).AutoMigrate(&models.DocumentRecord{})
}

func (p *PostgresStore) List(ctx context.Context, collection models.Collection) ([]models.Document, error) {
	var records []models.DocumentRecord
	err := p.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at, key").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return decodeRecords(records)
}

func (p *PostgresStore) Find(ctx context.Context, collection models.Collection, field, value string) ([]models.Document, error) {
	if field == "" {
		return nil, ErrInvalidField
	}
	var records []models.DocumentRecord
	err := p.filter(ctx, collection, field, value).
		Order("created_at, key").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("find %s where %s: %w", collection, field, err)
	}
	return decodeRecords(records)
}

func (p *PostgresStore) FindOne(ctx context.Context, collection models.Collection, field, value string) (string, models.Document, error) {
	if field == "" {
		return "", nil, ErrInvalidField
	}
	var record models.DocumentRecord
	err := p.filter(ctx, collection, field, value).
		Order("created_at, key").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("find %s where %s: %w", collection, field, err)
	}
	doc, err := decodeRecord(record)
	if err != nil {
		return "", nil, err
	}
	return record.Key, doc, nil
}

func (p *PostgresStore) Insert(ctx context.Context, collection models.Collection, doc models.Document) (string, error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}
	record := models.DocumentRecord{
		Key:        uuid.NewString(),
		Collection: collection,
		Data:       data,
	}
	if err := p.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	return record.Key, nil
}

func (p *PostgresStore) Merge(ctx context.Context, collection models.Collection, key string, patch models.Document) error {
	data, err := encodeDocument(patch)
	if err != nil {
		return err
	}
	result := p.db.WithContext(ctx).
		Model(&models.DocumentRecord{}).
		Where("collection = ? AND key = ?", collection, key).
		Update("data", gorm.Expr("data || ?::jsonb", data))
	if result.Error != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, key, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("merge %s/%s: %w", collection, key, ErrNotFound)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, collection models.Collection, key string) error {
	result := p.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Delete(&models.DocumentRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, key, ErrNotFound)
	}
	return nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// filter matches only JSON strings, so "4" never equals the number 4.
func (p *PostgresStore) filter(ctx context.Context, collection models.Collection, field, value string) *gorm.DB {
	return p.db.WithContext(ctx).
		Where("collection = ? AND data -> (?::text) = to_jsonb(?::text)", collection, field, value)
}

func encodeDocument(doc models.Document) (string, error) {
	if doc == nil {
		doc = models.Document{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(raw), nil
}

func decodeRecord(record models.DocumentRecord) (models.Document, error) {
	doc, err := decodeDocument([]byte(record.Data))
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", record.Key, err)
	}
	return doc, nil
}

func decodeRecords(records []models.DocumentRecord) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(records))
	for _, record := range records {
		doc, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
