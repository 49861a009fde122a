// Package respond writes the JSON bodies of the stand-in API.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gophdiary/internal/common"
)

// JSON writes v with the given status. A nil v writes only the header.
func JSON(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", common.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg}, the shape used by the auth endpoints and
// middleware.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Message writes {"message": msg}, the shape used by the diary endpoints.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}
