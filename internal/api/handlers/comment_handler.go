package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/services"
)

// CommentHandler handles HTTP requests for article comments.
type CommentHandler struct {
	comments services.CommentServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments services.CommentServiceProvider) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List handles retrieving an article's comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	comments, err := h.comments.ListByArticle(articleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Create handles attaching a comment to an article.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	articleID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.comments.CreateComment(principal, articleID, payload.Content)
	if err != nil {
		log.Warn().Err(err).Int64("article_id", articleID).Msg("Failed to create comment")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
