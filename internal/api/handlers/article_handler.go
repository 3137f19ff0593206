package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/services"
)

// ArticleHandler handles HTTP requests for articles and the personalized
// feed.
type ArticleHandler struct {
	content services.ContentServiceProvider
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(content services.ContentServiceProvider) *ArticleHandler {
	return &ArticleHandler{content: content}
}

// ArticlePayload defines the structure for create and update requests. Any
// author field a client includes is ignored; authorship comes from the
// authenticated principal.
type ArticlePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	ThemeID int64  `json:"themeId"`
}

// Feed returns the union of articles across the caller's followed themes.
func (h *ArticleHandler) Feed(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	articles, err := h.content.Feed(principal)
	if err != nil {
		log.Error().Err(err).Int64("user_id", principal.ID).Msg("Failed to build feed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// Create handles publishing a new article.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload ArticlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	article, err := h.content.CreateArticle(principal, payload.ThemeID, payload.Title, payload.Content)
	if err != nil {
		log.Warn().Err(err).Int64("theme_id", payload.ThemeID).Msg("Failed to create article")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

// Get handles retrieving a single article.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	article, err := h.content.GetArticle(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// Update handles overwriting an article's content. Only the author may do
// this.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	var payload ArticlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	article, err := h.content.UpdateArticle(principal, id, services.ArticlePatch{
		Title:   payload.Title,
		Content: payload.Content,
		ThemeID: payload.ThemeID,
	})
	if err != nil {
		log.Warn().Err(err).Int64("article_id", id).Msg("Failed to update article")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// Delete handles removing an article. Only the author may do this.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid article id", http.StatusBadRequest)
		return
	}

	if err := h.content.DeleteArticle(principal, id); err != nil {
		log.Warn().Err(err).Int64("article_id", id).Msg("Failed to delete article")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByTheme handles retrieving every article under a theme.
func (h *ArticleHandler) ListByTheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid theme id", http.StatusBadRequest)
		return
	}

	articles, err := h.content.ListByTheme(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}
