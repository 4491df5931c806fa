// Package respond centralizes JSON response writing. The blog endpoints
// answer with plain payloads and {"message": ...} errors; the catalog
// endpoints wrap everything in a {"success": ...} envelope.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// SuccessEnvelope is the catalog response wrapper.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	write(w, status, payload)
}

// Message writes a {"message": ...} body, used for blog endpoint errors
// and bare confirmations.
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"message": message})
}

// Success writes a catalog envelope carrying data.
func Success(w http.ResponseWriter, status int, data any) {
	write(w, status, SuccessEnvelope{Success: true, Data: data})
}

// Fail writes a catalog envelope carrying an error message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, SuccessEnvelope{Success: false, Message: message})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
