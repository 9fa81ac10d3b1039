package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, []int{1, 2})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type application/json")
	}
	if got := w.Body.String(); got != "[1,2]\n" {
		t.Errorf("Unexpected body %q", got)
	}
}

func TestText(t *testing.T) {
	w := httptest.NewRecorder()

	Text(w, http.StatusNotFound, "Book not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w.Body.String() != "Book not found" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()

	ValidationErrors(w, []ErrorDetail{{Field: "id", Message: "ID must be an integer"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	var response ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Errors) != 1 || response.Errors[0].Field != "id" {
		t.Errorf("Unexpected errors %v", response.Errors)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)

	var response ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Success {
		t.Error("Expected success to be false")
	}
	if response.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected error code INTERNAL_ERROR, got %s", response.Error.Code)
	}
	meta, ok := response.Meta.(map[string]interface{})
	if !ok || meta["request_id"] != "req-1" {
		t.Errorf("Expected request id in meta, got %v", response.Meta)
	}
}
