package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nmalhotra/bookshelf-service/internal/models"
	"github.com/nmalhotra/bookshelf-service/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// sortColumns maps accepted sortBy values to real columns.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"title":       "title",
	"author":      "author",
	"rating":      "rating",
	"read_status": "read_status",
}

// CreateBookCommand is the input for adding a book
type CreateBookCommand struct {
	Title      string   `json:"title" validate:"required"`
	Author     string   `json:"author" validate:"required"`
	Rating     *float64 `json:"rating"`
	Notes      string   `json:"notes"`
	ReadStatus string   `json:"read_status"`
	ISBN       string   `json:"isbn" validate:"required"`
	CoverImage string   `json:"cover_image"`
	Category   string   `json:"category"`
	Wishlist   bool     `json:"wishlist"`
}

// UpdateBookCommand is a merge-patch over book fields. Empty strings
// mean "leave unchanged"; Rating and Wishlist use pointer presence so
// explicit zero and false still apply.
type UpdateBookCommand struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Rating     *float64 `json:"rating"`
	Notes      string   `json:"notes"`
	ReadStatus string   `json:"read_status"`
	ISBN       string   `json:"isbn"`
	CoverImage string   `json:"cover_image"`
	Category   string   `json:"category"`
	Wishlist   *bool    `json:"wishlist"`
}

// ListBooksQuery narrows, orders and paginates a book listing
type ListBooksQuery struct {
	Page       int
	Limit      int
	Search     string
	Category   string
	ReadStatus string
	SortBy     string
	SortOrder  string
}

// CreateBook validates and persists a new book for the owner
func (s *Service) CreateBook(userID uuid.UUID, cmd CreateBookCommand) (*models.Book, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, tagged(ErrValidation, "Title, author, and ISBN are required")
	}
	if !models.ValidReadStatus(cmd.ReadStatus) {
		return nil, tagged(ErrValidation, "read_status must be one of: "+strings.Join(models.AllowedReadStatuses, ", "))
	}
	if cmd.Category != "" && !models.ValidCategory(cmd.Category) {
		return nil, tagged(ErrValidation, "category must be one of: "+strings.Join(models.AllowedCategories, ", "))
	}

	if _, err := s.repo.FindBookByISBN(cmd.ISBN, userID); err == nil {
		return nil, tagged(ErrConflict, "Book with this ISBN already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	book := &models.Book{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      cmd.Title,
		Author:     cmd.Author,
		Rating:     cmd.Rating,
		Notes:      cmd.Notes,
		ReadStatus: cmd.ReadStatus,
		ISBN:       cmd.ISBN,
		CoverImage: cmd.CoverImage,
		Category:   cmd.Category,
		Wishlist:   cmd.Wishlist,
	}

	if err := s.repo.CreateBook(book); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, tagged(ErrConflict, "Book with this ISBN already exists")
		}
		return nil, err
	}

	s.log.Infof("Book added for user %s: %s", userID, book.Title)
	return book, nil
}

// GetBook returns a single owner-scoped book
func (s *Service) GetBook(userID, bookID uuid.UUID) (*models.Book, error) {
	book, err := s.repo.FindBookByID(bookID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, tagged(ErrNotFound, "Book not found")
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks returns one page of the owner's books plus pagination
// metadata. An empty result is a valid empty page, not an error.
func (s *Service) ListBooks(userID uuid.UUID, q ListBooksQuery) (*models.BookPage, error) {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortColumn, ok := sortColumns[sortBy]
	if !ok {
		return nil, tagged(ErrValidation, "sortBy must be one of: "+strings.Join(sortKeys(), ", "))
	}

	sortOrder := strings.ToUpper(q.SortOrder)
	if sortOrder == "" {
		sortOrder = "DESC"
	}
	if sortOrder != "ASC" && sortOrder != "DESC" {
		return nil, tagged(ErrValidation, "sortOrder must be ASC or DESC")
	}

	filter := repository.ListFilter{
		Search:     q.Search,
		Category:   sentinelToEmpty(q.Category),
		ReadStatus: sentinelToEmpty(q.ReadStatus),
		SortColumn: sortColumn,
		SortOrder:  sortOrder,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	books, total, err := s.repo.ListBooks(userID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &models.BookPage{
		Books: books,
		Meta: models.PageMeta{
			TotalRecords: total,
			TotalPages:   totalPages,
			CurrentPage:  page,
			PageSize:     limit,
		},
	}, nil
}

// UpdateBook applies a merge-patch to an owner-scoped book and returns
// the re-fetched record.
func (s *Service) UpdateBook(userID, bookID uuid.UUID, cmd UpdateBookCommand) (*models.Book, error) {
	if _, err := s.repo.FindBookByID(bookID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, tagged(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if cmd.Title != "" {
		fields["title"] = cmd.Title
	}
	if cmd.Author != "" {
		fields["author"] = cmd.Author
	}
	if cmd.Rating != nil {
		fields["rating"] = *cmd.Rating
	}
	if cmd.Notes != "" {
		fields["notes"] = cmd.Notes
	}
	if cmd.ReadStatus != "" {
		if !models.ValidReadStatus(cmd.ReadStatus) {
			return nil, tagged(ErrValidation, "read_status must be one of: "+strings.Join(models.AllowedReadStatuses, ", "))
		}
		fields["read_status"] = cmd.ReadStatus
	}
	if cmd.ISBN != "" {
		fields["isbn"] = cmd.ISBN
	}
	if cmd.CoverImage != "" {
		fields["cover_image"] = cmd.CoverImage
	}
	if cmd.Category != "" {
		if !models.ValidCategory(cmd.Category) {
			return nil, tagged(ErrValidation, "category must be one of: "+strings.Join(models.AllowedCategories, ", "))
		}
		fields["category"] = cmd.Category
	}
	if cmd.Wishlist != nil {
		fields["wishlist"] = *cmd.Wishlist
	}

	if err := s.repo.UpdateBook(bookID, userID, fields); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, tagged(ErrConflict, "Book with this ISBN already exists")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, tagged(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	// Re-fetch so the response reflects store-side defaults.
	book, err := s.repo.FindBookByID(bookID, userID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Book updated for user %s: %s", userID, bookID)
	return book, nil
}

// DeleteBook hard-deletes an owner-scoped book
func (s *Service) DeleteBook(userID, bookID uuid.UUID) error {
	if err := s.repo.DeleteBook(bookID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return tagged(ErrNotFound, "Book not found")
		}
		return err
	}
	s.log.Infof("Book deleted for user %s: %s", userID, bookID)
	return nil
}

func sentinelToEmpty(v string) string {
	if v == "all" {
		return ""
	}
	return v
}

func sortKeys() []string {
	keys := make([]string, 0, len(sortColumns))
	for k := range sortColumns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
