package services

import (
	"fmt"
	"time"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	CreateComment(principal auth.Principal, articleID int64, content string) (models.Comment, error)
	ListByArticle(articleID int64) ([]models.Comment, error)
}

// CommentService implements comment creation and listing. Comments have no
// ownership-gated mutation.
type CommentService struct {
	comments *store.CommentStore
	articles *store.ArticleStore
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments *store.CommentStore, articles *store.ArticleStore) *CommentService {
	return &CommentService{comments: comments, articles: articles}
}

// CreateComment attaches a comment to an existing article.
func (s *CommentService) CreateComment(principal auth.Principal, articleID int64, content string) (models.Comment, error) {
	if content == "" {
		return models.Comment{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	exists, err := s.articles.Exists(articleID)
	if err != nil {
		return models.Comment{}, err
	}
	if !exists {
		return models.Comment{}, fmt.Errorf("%w: article %d", ErrNotFound, articleID)
	}

	comment, err := s.comments.Insert(models.Comment{
		ArticleID: articleID,
		AuthorID:  principal.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return models.Comment{}, err
	}
	comment.AuthorName = principal.Name
	return comment, nil
}

// ListByArticle returns an article's comments.
func (s *CommentService) ListByArticle(articleID int64) ([]models.Comment, error) {
	exists, err := s.articles.Exists(articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: article %d", ErrNotFound, articleID)
	}
	return s.comments.ListByArticle(articleID)
}
