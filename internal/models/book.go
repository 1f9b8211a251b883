package models

import (
	"time"

	"github.com/google/uuid"
)

// Read status values accepted for a book.
const (
	StatusRead       = "Read"
	StatusUnread     = "Unread"
	StatusInProgress = "In Progress"
)

// AllowedReadStatuses lists the valid read_status values.
var AllowedReadStatuses = []string{StatusRead, StatusUnread, StatusInProgress}

// AllowedCategories is the closed category vocabulary.
var AllowedCategories = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Sci-Fi",
	"Fantasy",
	"Romance",
	"Thriller",
	"Horror",
	"Biography",
	"History",
	"Self-Help",
	"Young Adult",
	"Children's",
	"Graphic Novel",
	"Cookbook",
	"Travel",
	"True Crime",
	"Health & Fitness",
	"Business",
	"Poetry",
}

// Book represents a book owned by a user
type Book struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Rating     *float64  `json:"rating"`
	Notes      string    `json:"notes"`
	ReadStatus string    `json:"read_status"`
	ISBN       string    `json:"isbn"`
	CoverImage string    `json:"cover_image"`
	Category   string    `json:"category"`
	Wishlist   bool      `json:"wishlist"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PageMeta carries pagination metadata for list responses
type PageMeta struct {
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
}

// BookPage is one page of a filtered book listing
type BookPage struct {
	Books []Book
	Meta  PageMeta
}

// ValidReadStatus reports whether s is an allowed read_status value
func ValidReadStatus(s string) bool {
	for _, v := range AllowedReadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is in the category vocabulary
func ValidCategory(c string) bool {
	for _, v := range AllowedCategories {
		if c == v {
			return true
		}
	}
	return false
}
