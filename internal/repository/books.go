package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nmalhotra/bookshelf-service/internal/models"
)

const bookColumns = "id, user_id, title, author, rating, notes, read_status, isbn, cover_image, category, wishlist, created_at, updated_at"

// ListFilter narrows and orders a book listing. Empty string fields
// mean "no filter"; SortColumn must already be a vetted column name.
type ListFilter struct {
	Search     string
	Category   string
	ReadStatus string
	SortColumn string
	SortOrder  string
	Limit      int
	Offset     int
}

// CreateBook creates a new book in the database
func (r *Repository) CreateBook(book *models.Book) error {
	query := `
		INSERT INTO books (id, user_id, title, author, rating, notes, read_status, isbn, cover_image, category, wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query,
		book.ID, book.UserID, book.Title, book.Author, ratingValue(book.Rating),
		book.Notes, book.ReadStatus, book.ISBN, book.CoverImage, book.Category, book.Wishlist).
		Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindBookByID retrieves a book by id, scoped to its owner
func (r *Repository) FindBookByID(id, userID uuid.UUID) (*models.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1 AND user_id = $2`, bookColumns)
	return r.scanBook(r.db.QueryRow(query, id, userID))
}

// FindBookByISBN retrieves a book by ISBN, scoped to its owner
func (r *Repository) FindBookByISBN(isbn string, userID uuid.UUID) (*models.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE isbn = $1 AND user_id = $2`, bookColumns)
	return r.scanBook(r.db.QueryRow(query, isbn, userID))
}

// ListBooks returns one page of the owner's books matching the filter,
// plus the total match count before pagination.
func (r *Repository) ListBooks(userID uuid.UUID, f ListFilter) ([]models.Book, int, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		args = append(args, pattern)
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d OR notes ILIKE $%d)", n, n, n))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.ReadStatus != "" {
		args = append(args, f.ReadStatus)
		where = append(where, fmt.Sprintf("read_status = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books WHERE %s`, whereClause)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM books WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		bookColumns, whereClause, f.SortColumn, f.SortOrder, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := r.scanBookRow(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, total, nil
}

// UpdateBook applies the given column values to an owner-scoped book.
// Returns ErrNotFound when no such book exists for the owner.
func (r *Repository) UpdateBook(id, userID uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	// Deterministic column order keeps the statement stable.
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := make([]string, 0, len(cols)+1)
	args := make([]interface{}, 0, len(cols)+2)
	for _, col := range cols {
		args = append(args, fields[col])
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))

	res, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBook removes an owner-scoped book. Returns ErrNotFound when no
// such book exists for the owner.
func (r *Repository) DeleteBook(id, userID uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBook(row *sql.Row) (*models.Book, error) {
	book, err := r.scanBookRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return book, err
}

func (r *Repository) scanBookRow(row rowScanner) (*models.Book, error) {
	book := &models.Book{}
	var rating sql.NullFloat64
	err := row.Scan(&book.ID, &book.UserID, &book.Title, &book.Author, &rating,
		&book.Notes, &book.ReadStatus, &book.ISBN, &book.CoverImage, &book.Category,
		&book.Wishlist, &book.CreatedAt, &book.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	if rating.Valid {
		book.Rating = &rating.Float64
	}
	return book, nil
}

func ratingValue(r *float64) interface{} {
	if r == nil {
		return nil
	}
	return *r
}
