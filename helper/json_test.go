package helper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJson_Object(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"r1","floor":3}`))
	w := httptest.NewRecorder()

	var payload map[string]any
	require.NoError(t, ReadJson(w, r, &payload))
	assert.Equal(t, "r1", payload["id"])
	assert.Equal(t, json.Number("3"), payload["floor"])
}

func TestReadJson_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", `{"id":`},
		{"trailing data", `{"id":"r1"} {"id":"r2"}`},
		{"stray closing brace", `{"a":1}}`},
		{"stray closing bracket", `{"a":1}]`},
		{"trailing garbage", `{"a":1} x`},
		{"wrong type", `["a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			var payload map[string]any
			assert.Error(t, ReadJson(w, r, &payload))
		})
	}
}

func TestReadJson_EmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var payload map[string]any
	assert.ErrorIs(t, ReadJson(httptest.NewRecorder(), r, &payload), ErrEmptyBody)
}

func TestReadJson_TooLarge(t *testing.T) {
	body := `{"blob":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var payload map[string]any
	assert.Error(t, ReadJson(httptest.NewRecorder(), r, &payload))
}

func TestWriteJsonError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteJsonError(w, http.StatusNotFound, "Request not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Request not found"}`, w.Body.String())
}

func TestWriteJsonMessage(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteJsonMessage(w, http.StatusOK, "ok"))
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestReadJson_TrailingData(t *testing.T) {
	for _, body := range []string{`{"a":1}}`, `{"a":1}]`, `{"a":1}{}`} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var payload map[string]any
		assert.ErrorIs(t, ReadJson(httptest.NewRecorder(), r, &payload), ErrTrailingData, body)
	}
}

func TestReadJson_TrailingWhitespace(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"a\":1}\n\t "))
	var payload map[string]any
	require.NoError(t, ReadJson(httptest.NewRecorder(), r, &payload))
	assert.Equal(t, json.Number("1"), payload["a"])
}
