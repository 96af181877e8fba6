package utils

import (
	"encoding/json"
	"net/http"

	"docscabinet/internal/apperr"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error maps err to its kind and status and writes {"error": "<Kind>"}.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	JSON(w, apperr.Status(kind), map[string]string{"error": string(kind)})
}

// DecodeJSON parses the JSON body into v and handles invalid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		Error(w, apperr.New(apperr.InvalidRequest))
		return http.ErrBodyNotAllowed
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, apperr.Wrap(apperr.InvalidRequest, err))
		return err
	}

	return nil
}
