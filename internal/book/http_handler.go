package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"bookshelf/internal/entity"
	"bookshelf/internal/httpx"

	"github.com/go-playground/validator/v10"
)

const notFoundMessage = "Book not found"

var messages = httpx.Messages{
	"title:required":           "Title is required",
	"publishedAt:required":     "Published year is required",
	"authors:required":         "At least one author is required",
	"authors:min":              "At least one author is required",
	"authors[].fname:required": "Author first name required",
	"authors[].lname:required": "Author last name required",
	"title:nonempty":           "Title cannot be empty",
	"publishedAt:nonempty":     "Published year cannot be empty",
	"authorIds:type":           "Author IDs must be an array of integers",
}

type authorRequest struct {
	FName string `json:"fname" validate:"required"`
	LName string `json:"lname" validate:"required"`
}

type createBookRequest struct {
	Title       string          `json:"title" validate:"required"`
	PublishedAt string          `json:"publishedAt" validate:"required"`
	Authors     []authorRequest `json:"authors" validate:"required,min=1,dive"`
}

// optional remembers whether a field was present in the body, so an
// explicit null can be told apart from an omitted field.
type optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &json.UnmarshalTypeError{Value: typeErr.Value, Type: reflect.TypeOf(o.Value), Offset: typeErr.Offset}
		}
		return err
	}
	return nil
}

// ptr returns the decoded value, or nil when the field was absent or null.
func (o optional[T]) ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

type updateBookRequest struct {
	Title       optional[string] `json:"title"`
	PublishedAt optional[string] `json:"publishedAt"`
	AuthorIDs   optional[[]int]  `json:"authorIds"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message     string        `json:"message"`
	DeletedBook []entity.Book `json:"deletedBook"`
}

func init() {
	httpx.RegisterStructValidation(validateUpdateBookRequest, updateBookRequest{})
}

// validateUpdateBookRequest rejects fields that are present but empty or null.
func validateUpdateBookRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(updateBookRequest)
	if req.Title.Set && (req.Title.Null || req.Title.Value == "") {
		sl.ReportError(req.Title.Value, "title", "Title", "nonempty", "")
	}
	if req.PublishedAt.Set && (req.PublishedAt.Null || req.PublishedAt.Value == "") {
		sl.ReportError(req.PublishedAt.Value, "publishedAt", "PublishedAt", "nonempty", "")
	}
	if req.AuthorIDs.Null {
		sl.ReportError(req.AuthorIDs.Value, "authorIds", "AuthorIDs", "type", "")
	}
}

// HTTPHandler serves the book routes on top of Operations.
type HTTPHandler struct {
	ops    Operations
	logger *slog.Logger
}

// NewHTTPHandler returns a handler backed by ops. A nil logger falls back to
// slog.Default.
func NewHTTPHandler(ops Operations, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{ops: ops, logger: logger}
}

// Register mounts the book routes under /v1/books.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/books", h.List)
	mux.HandleFunc("POST /v1/books", h.Create)
	mux.HandleFunc("GET /v1/books/{id}", h.Get)
	mux.HandleFunc("PUT /v1/books/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/books/{id}", h.Delete)
}

// List handles GET /v1/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := Query{
		Title:       query.Get("title"),
		PublishedAt: query.Get("publishedAt"),
	}

	books, err := h.ops.List(r.Context(), q)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Get handles GET /v1/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, detail := parseID(r)
	if detail != nil {
		httpx.ValidationErrors(w, []httpx.ErrorDetail{*detail})
		return
	}

	b, err := h.ops.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /v1/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	details, err := httpx.DecodeJSON(r, &req, messages)
	if err != nil {
		httpx.PayloadTooLarge(w, r)
		return
	}
	if details != nil {
		httpx.ValidationErrors(w, details)
		return
	}
	if details := httpx.ValidateStruct(req, messages); details != nil {
		httpx.ValidationErrors(w, details)
		return
	}

	in := NewBook{
		Title:       req.Title,
		PublishedAt: req.PublishedAt,
		Authors:     make([]AuthorName, 0, len(req.Authors)),
	}
	for _, a := range req.Authors {
		in.Authors = append(in.Authors, AuthorName{FName: a.FName, LName: a.LName})
	}

	b, err := h.ops.Create(r.Context(), in)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// Update handles PUT /v1/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var details []httpx.ErrorDetail
	id, idDetail := parseID(r)
	if idDetail != nil {
		details = append(details, *idDetail)
	}

	var req updateBookRequest
	decodeDetails, err := httpx.DecodeJSON(r, &req, messages)
	if err != nil {
		httpx.PayloadTooLarge(w, r)
		return
	}
	if decodeDetails != nil {
		details = append(details, decodeDetails...)
	} else {
		details = append(details, httpx.ValidateStruct(req, messages)...)
	}
	if len(details) > 0 {
		httpx.ValidationErrors(w, details)
		return
	}

	b, err := h.ops.Update(r.Context(), id, Patch{
		Title:       req.Title.ptr(),
		PublishedAt: req.PublishedAt.ptr(),
		AuthorIDs:   req.AuthorIDs.ptr(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /v1/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, detail := parseID(r)
	if detail != nil {
		httpx.ValidationErrors(w, []httpx.ErrorDetail{*detail})
		return
	}

	removed, err := h.ops.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, DeleteResponse{
		Message:     "Book deleted successfully",
		DeletedBook: []entity.Book{removed},
	})
}

// parseID reads the {id} path value. Integers that overflow int are valid
// but can never name a stored book, so they map to 0, which no book uses.
func parseID(r *http.Request) (int, *httpx.ErrorDetail) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if errors.Is(err, strconv.ErrRange) {
		return 0, nil
	}
	if err != nil {
		return 0, &httpx.ErrorDetail{Field: "id", Message: "ID must be an integer"}
	}
	return id, nil
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.Text(w, http.StatusNotFound, notFoundMessage)
		return
	}
	h.internalError(w, r, err)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "book request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", httpx.RequestIDFrom(r),
		"error", err,
	)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
