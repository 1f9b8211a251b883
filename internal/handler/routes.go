package handler

import (
	"github.com/gorilla/mux"

	"github.com/nmalhotra/bookshelf-service/internal/config"
	"github.com/nmalhotra/bookshelf-service/internal/middleware"
)

// RegisterRoutes mounts all routes on the router. Register and login
// are public; everything else sits behind the auth middleware.
func (h *Handler) RegisterRoutes(r *mux.Router, cfg *config.Config) {
	r.HandleFunc("/auth", h.Welcome).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	user := r.PathPrefix("/auth/user").Subrouter()
	user.Use(middleware.AuthMiddleware(cfg))
	user.HandleFunc("", h.GetUserDetails).Methods("GET")

	books := r.PathPrefix("/books").Subrouter()
	books.Use(middleware.AuthMiddleware(cfg))
	// The fixed isbn prefix must be registered before the {id} route.
	books.HandleFunc("/isbn/{isbn}", h.GetISBNBookInfo).Methods("GET")
	books.HandleFunc("", h.GetBooks).Methods("GET")
	books.HandleFunc("", h.AddBook).Methods("POST")
	books.HandleFunc("/{id}", h.GetBookByID).Methods("GET")
	books.HandleFunc("/{id}", h.UpdateBook).Methods("PATCH")
	books.HandleFunc("/{id}", h.DeleteBook).Methods("DELETE")
}
