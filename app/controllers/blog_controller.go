package controllers

import (
	"net/http"

	"bylines/app/models"
	"bylines/app/repositories"
	"bylines/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// BlogController handles HTTP requests for blog posts
type BlogController struct {
	posts     repositories.PostRepository
	directory *services.AuthorDirectory
	pipeline  *services.Pipeline
}

// NewBlogController creates a new BlogController
func NewBlogController(posts repositories.PostRepository, directory *services.AuthorDirectory, pipeline *services.Pipeline) *BlogController {
	return &BlogController{
		posts:     posts,
		directory: directory,
		pipeline:  pipeline,
	}
}

// Index lists all posts newest-first, with the category and author sets
// used to build navigation.
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := bc.posts.ListAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch blogs: "+err.Error())
		return
	}

	categories, err := bc.posts.Categories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch categories: "+err.Error())
		return
	}

	authors, err := bc.directory.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch authors: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"blogs":      posts,
		"categories": categories,
		"authors":    authors,
	})
}

// Show returns a single post by slug, with its author attached. Each read
// bumps the view counter; a failed bump never fails the read.
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := bc.posts.GetBySlug(slug)
	if err == repositories.ErrNotFound {
		writeError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch blog: "+err.Error())
		return
	}

	var author *models.Persona
	if post.PersonaID != "" {
		author, err = bc.directory.ByID(post.PersonaID)
		if err != nil && err != repositories.ErrNotFound {
			writeError(w, http.StatusInternalServerError, "Failed to fetch author: "+err.Error())
			return
		}
	}

	if err := bc.posts.IncrementViews(slug); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("failed to bump view counter")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"blog":   post,
		"author": author,
	})
}

// ByCategory lists the posts carrying the given category label, matched
// case-insensitively. An empty result is a 404, not an empty page.
func (bc *BlogController) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	posts, err := bc.posts.ListByCategory(category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch blogs: "+err.Error())
		return
	}
	if len(posts) == 0 {
		writeError(w, http.StatusNotFound, "No blogs found for this category")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"blogs":    posts,
	})
}

// Generate runs one publication pipeline pass. The run's own failures are
// logged by the pipeline, not surfaced here.
func (bc *BlogController) Generate(w http.ResponseWriter, r *http.Request) {
	bc.pipeline.RunOnce(r.Context())
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "generated"})
}
