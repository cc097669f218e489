package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"maintenance-service/dto"
)

const maxBodyBytes = 1_048_576

var (
	ErrEmptyBody    = errors.New("request body must not be empty")
	ErrTrailingData = errors.New("request body must contain a single JSON object")
)

func WriteJson(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// ReadJson decodes a single JSON value from the request body into payload.
// Trailing data after the value is rejected.
func ReadJson(w http.ResponseWriter, r *http.Request, payload any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(payload); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

func WriteJsonError(w http.ResponseWriter, status int, message string) error {
	return WriteJson(w, status, dto.ErrorDto{Error: message})
}

func WriteJsonMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJson(w, status, dto.MessageDto{Message: message})
}
