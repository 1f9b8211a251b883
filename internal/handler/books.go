package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nmalhotra/bookshelf-service/internal/middleware"
	"github.com/nmalhotra/bookshelf-service/internal/service"
)

// GetBooks lists the caller's books with filtering and pagination
func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. User not authenticated.")
		return
	}

	query := r.URL.Query()
	page, err := queryInt(query.Get("page"), 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	limit, err := queryInt(query.Get("limit"), 10)
	if err != nil {
		respondError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	result, err := h.svc.ListBooks(authUser.ID, service.ListBooksQuery{
		Page:       page,
		Limit:      limit,
		Search:     query.Get("search"),
		Category:   query.Get("category"),
		ReadStatus: query.Get("read_status"),
		SortBy:     query.Get("sortBy"),
		SortOrder:  query.Get("sortOrder"),
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Books fetched successfully",
		"data":    result.Books,
		"meta":    result.Meta,
	})
}

// GetBookByID returns one of the caller's books
func (h *Handler) GetBookByID(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. User not authenticated.")
		return
	}

	bookID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	book, err := h.svc.GetBook(authUser.ID, bookID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, book)
}

// GetISBNBookInfo proxies an ISBN lookup to the external catalog
func (h *Handler) GetISBNBookInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.GetBookInfo(r.Context(), mux.Vars(r)["isbn"])
	if err != nil {
		h.log.Errorf("Catalog lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch book information, try again")
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// AddBook creates a book for the caller
func (h *Handler) AddBook(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. User not authenticated.")
		return
	}

	var cmd service.CreateBookCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	book, err := h.svc.CreateBook(authUser.ID, cmd)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Book added successfully",
		"book":    book,
	})
}

// UpdateBook merge-patches one of the caller's books
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. User not authenticated.")
		return
	}

	bookID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	var cmd service.UpdateBookCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	book, err := h.svc.UpdateBook(authUser.ID, bookID, cmd)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Book updated successfully",
		"book":    book,
	})
}

// DeleteBook hard-deletes one of the caller's books
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. User not authenticated.")
		return
	}

	bookID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	if err := h.svc.DeleteBook(authUser.ID, bookID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}

func queryInt(raw string, defaultVal int) (int, error) {
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}
