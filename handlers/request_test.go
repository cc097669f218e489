package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/models"
	"maintenance-service/store"
)

func TestRequests_Scenario(t *testing.T) {
	s := store.NewMemoryStore()
	h := newTestRouter(t, s)

	w := do(t, h, http.MethodPost, "/api/data", `{"id":"r1","apartmentNumber":"4B","status":"open"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Data received successfully!"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/requests_by_apt/4B", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"r1","apartmentNumber":"4B","status":"open"}]`, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/update_request/r1", `{"status":"closed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Request updated successfully"}`, w.Body.String())

	_, doc, err := s.FindOne(context.Background(), models.RequestsCollection, "id", "r1")
	require.NoError(t, err)
	assert.Equal(t, models.Document{"id": "r1", "apartmentNumber": "4B", "status": "closed"}, doc)
}

func TestRequests_ListReturnsInsertedVerbatim(t *testing.T) {
	h := newTestRouter(t, store.NewMemoryStore())

	w := do(t, h, http.MethodGet, "/api/requests", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	body := `{"id":"r1","apartmentNumber":"1A","area":"kitchen","urgency":"high","photo":null,"extra":{"nested":[1,2]}}`
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", body).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", `{"id":"r2","apartmentNumber":"2B"}`).Code)

	w = do(t, h, http.MethodGet, "/api/requests", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[`+body+`,{"id":"r2","apartmentNumber":"2B"}]`, w.Body.String())
}

func TestRequests_ByApartment(t *testing.T) {
	h := newTestRouter(t, store.NewMemoryStore())
	for _, body := range []string{
		`{"id":"r1","apartmentNumber":"4B"}`,
		`{"id":"r2","apartmentNumber":"2A"}`,
		`{"id":"r3","apartmentNumber":"4B"}`,
	} {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", body).Code)
	}

	list := decodeList(t, do(t, h, http.MethodGet, "/api/requests_by_apt/4B", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "r1", list[0]["id"])
	assert.Equal(t, "r3", list[1]["id"])

	w := do(t, h, http.MethodGet, "/api/requests_by_apt/9Z", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRequests_UpdateNotFound(t *testing.T) {
	h := newTestRouter(t, store.NewMemoryStore())

	for _, path := range []string{"/api/update_request/missing", "/api/add_comment/missing"} {
		w := do(t, h, http.MethodPost, path, `{"status":"closed"}`)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"Request not found"}`, w.Body.String(), path)
	}
}

func TestRequests_AddCommentIsUpdateAlias(t *testing.T) {
	s := store.NewMemoryStore()
	h := newTestRouter(t, s)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", `{"id":"r1","comment":null,"status":"open"}`).Code)

	w := do(t, h, http.MethodPost, "/api/add_comment/r1", `{"comment":"plumber booked"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Request updated successfully"}`, w.Body.String())

	_, doc, err := s.FindOne(context.Background(), models.RequestsCollection, "id", "r1")
	require.NoError(t, err)
	assert.Equal(t, models.Document{"id": "r1", "comment": "plumber booked", "status": "open"}, doc)
}

func TestRequests_UpdateFirstMatchOnly(t *testing.T) {
	s := store.NewMemoryStore()
	h := newTestRouter(t, s)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", `{"id":"dup","n":"1"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", `{"id":"dup","n":"2"}`).Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/update_request/dup", `{"status":"closed"}`).Code)

	list := decodeList(t, do(t, h, http.MethodGet, "/api/requests", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "closed", list[0]["status"])
	assert.NotContains(t, list[1], "status")
}

func TestRequests_MalformedBody(t *testing.T) {
	s := store.NewMemoryStore()
	h := newTestRouter(t, s)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", `{"id":"r1"}`).Code)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"insert syntax", "/api/data", `{"id":`},
		{"insert array", "/api/data", `[1,2]`},
		{"insert null", "/api/data", `null`},
		{"insert empty", "/api/data", ``},
		{"update syntax", "/api/update_request/r1", `{"status"`},
		{"update string", "/api/update_request/r1", `"closed"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	docs, err := s.List(context.Background(), models.RequestsCollection)
	require.NoError(t, err)
	assert.Equal(t, []models.Document{{"id": "r1"}}, docs)
}

func TestRequests_StoreFailures(t *testing.T) {
	mem := store.NewMemoryStore()
	_, err := mem.Insert(context.Background(), models.RequestsCollection, models.Document{"id": "r1"})
	require.NoError(t, err)
	h := newTestRouter(t, &failingStore{MemoryStore: mem, err: errors.New("deadline exceeded")})

	w := do(t, h, http.MethodGet, "/api/requests", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"database error"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/requests_by_apt/4B", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, h, http.MethodPost, "/api/data", `{"id":"r2"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"database error"}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/update_request/r1", `{"status":"closed"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"deadline exceeded"}`, w.Body.String())
}

func TestRequests_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, store.NewMemoryStore())
	w := do(t, h, http.MethodGet, "/api/data", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRequests_LargeIntegersRoundTripExactly(t *testing.T) {
	h := newTestRouter(t, store.NewMemoryStore())
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/data", `{"id":"r1","ticket":9007199254740993,"cost":12.50}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/update_request/r1", `{"ref":18446744073709551615}`).Code)

	w := do(t, h, http.MethodGet, "/api/requests", "")
	require.Equal(t, http.StatusOK, w.Code)
	// JSONEq would compare through float64, so assert on the raw text.
	assert.Contains(t, w.Body.String(), `"ticket":9007199254740993`)
	assert.Contains(t, w.Body.String(), `"ref":18446744073709551615`)
	assert.Contains(t, w.Body.String(), `"cost":12.50`)
}
