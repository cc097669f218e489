package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"maintenance-service/models"
)

type memoryEntry struct {
	key string
	doc models.Document
}

// MemoryStore keeps documents in process memory. It backs tests and
// STORE_DRIVER=memory runs; contents are lost on exit.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[models.Collection][]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[models.Collection][]memoryEntry)}
}

func (m *MemoryStore) List(ctx context.Context, collection models.Collection) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]models.Document, 0, len(m.collections[collection]))
	for _, e := range m.collections[collection] {
		docs = append(docs, copyDocument(e.doc))
	}
	return docs, nil
}

func (m *MemoryStore) Find(ctx context.Context, collection models.Collection, field, value string) ([]models.Document, error) {
	if field == "" {
		return nil, ErrInvalidField
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := []models.Document{}
	for _, e := range m.collections[collection] {
		if fieldEquals(e.doc, field, value) {
			docs = append(docs, copyDocument(e.doc))
		}
	}
	return docs, nil
}

func (m *MemoryStore) FindOne(ctx context.Context, collection models.Collection, field, value string) (string, models.Document, error) {
	if field == "" {
		return "", nil, ErrInvalidField
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.collections[collection] {
		if fieldEquals(e.doc, field, value) {
			return e.key, copyDocument(e.doc), nil
		}
	}
	return "", nil, ErrNotFound
}

func (m *MemoryStore) Insert(ctx context.Context, collection models.Collection, doc models.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stored, err := normalize(doc)
	if err != nil {
		return "", err
	}
	key := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], memoryEntry{key: key, doc: stored})
	return key, nil
}

func (m *MemoryStore) Merge(ctx context.Context, collection models.Collection, key string, patch models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields, err := normalize(patch)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(collection, key)
	if i < 0 {
		return fmt.Errorf("merge %s/%s: %w", collection, key, ErrNotFound)
	}
	doc := m.collections[collection][i].doc
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection models.Collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(collection, key)
	if i < 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, key, ErrNotFound)
	}
	entries := m.collections[collection]
	m.collections[collection] = append(entries[:i:i], entries[i+1:]...)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) indexOf(collection models.Collection, key string) int {
	for i, e := range m.collections[collection] {
		if e.key == key {
			return i
		}
	}
	return -1
}

func fieldEquals(doc models.Document, field, value string) bool {
	s, ok := doc[field].(string)
	return ok && s == value
}

// normalize round-trips doc through JSON so the stored copy holds the same
// value types a database-backed store would hand back.
func normalize(doc models.Document) (models.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	out, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

func copyDocument(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
