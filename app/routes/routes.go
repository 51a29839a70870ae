package routes

import (
	"net/http"

	"bylines/app/controllers"
	"bylines/app/middleware"

	"github.com/gorilla/mux"
)

// Setup wires the JSON API onto a router.
func Setup(blogs *controllers.BlogController, authors *controllers.AuthorController) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Logger, middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/blogs", blogs.Index).Methods(http.MethodGet)
	api.HandleFunc("/blogs/generate", blogs.Generate).Methods(http.MethodPost)
	api.HandleFunc("/blogs/{slug}", blogs.Show).Methods(http.MethodGet)
	api.HandleFunc("/categories/{category}", blogs.ByCategory).Methods(http.MethodGet)

	api.HandleFunc("/authors", authors.Index).Methods(http.MethodGet)
	api.HandleFunc("/authors/generate", authors.Generate).Methods(http.MethodPost)
	api.HandleFunc("/authors/{slug}", authors.Show).Methods(http.MethodGet)

	return router
}
