package controllers

import (
	"net/http"

	"bylines/app/repositories"
	"bylines/app/services"

	"github.com/gorilla/mux"
)

// AuthorController handles HTTP requests for author personas
type AuthorController struct {
	directory *services.AuthorDirectory
	personas  *services.PersonaService
	posts     repositories.PostRepository
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(directory *services.AuthorDirectory, personas *services.PersonaService, posts repositories.PostRepository) *AuthorController {
	return &AuthorController{
		directory: directory,
		personas:  personas,
		posts:     posts,
	}
}

// Index lists all author personas. Served from the directory cache, so a
// freshly created persona may take until cache expiry to appear.
func (ac *AuthorController) Index(w http.ResponseWriter, r *http.Request) {
	authors, err := ac.directory.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch authors: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"authors": authors})
}

// Show returns one author by slug together with their posts, newest first.
func (ac *AuthorController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	author, err := ac.directory.BySlug(slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch author: "+err.Error())
		return
	}
	if author == nil {
		writeError(w, http.StatusNotFound, "Author not found")
		return
	}

	posts, err := ac.posts.ListByPersona(author.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch blogs: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"author": author,
		"blogs":  posts,
	})
}

// Generate invents and registers a new AI persona.
func (ac *AuthorController) Generate(w http.ResponseWriter, r *http.Request) {
	persona, err := ac.personas.Generate(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to generate author: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"author": persona})
}
