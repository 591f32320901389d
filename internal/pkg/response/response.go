package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the bare error shape of the free-form completion route
type ErrorResponse struct {
	Error string `json:"error"`
}

// FailureResponse is the error shape of the review and suggestion routes
type FailureResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Error writes an error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// Failure writes a success=false response; detail and suggestion are omitted when empty
func Failure(w http.ResponseWriter, status int, message, detail, suggestion string) {
	JSON(w, status, FailureResponse{
		Message:    message,
		Error:      detail,
		Suggestion: suggestion,
	})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}
