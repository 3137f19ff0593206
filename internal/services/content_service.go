package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// ArticlePatch carries the mutable fields of an article update. A zero
// ThemeID means "keep the current theme". Any author information a client
// tucks into its payload is irrelevant here: authorization is bound to the
// authenticated principal, never to the patch.
type ArticlePatch struct {
	Title   string
	Content string
	ThemeID int64
}

// ContentServiceProvider defines the interface for article services.
type ContentServiceProvider interface {
	CreateArticle(principal auth.Principal, themeID int64, title, content string) (models.Article, error)
	GetArticle(id int64) (models.Article, error)
	UpdateArticle(principal auth.Principal, id int64, patch ArticlePatch) (models.Article, error)
	DeleteArticle(principal auth.Principal, id int64) error
	ListByTheme(themeID int64) ([]models.Article, error)
	Feed(principal auth.Principal) ([]models.Article, error)
	ArticleExists(id int64) (bool, error)
}

// ContentService implements ownership-gated article mutation and
// subscription-driven feed aggregation.
type ContentService struct {
	articles *store.ArticleStore
	themes   *store.ThemeStore
	follows  *store.FollowStore
	events   EventServiceProvider
}

// NewContentService creates a new ContentService.
func NewContentService(articles *store.ArticleStore, themes *store.ThemeStore, follows *store.FollowStore, events EventServiceProvider) *ContentService {
	return &ContentService{articles: articles, themes: themes, follows: follows, events: events}
}

// CreateArticle publishes a new article authored by the principal.
func (s *ContentService) CreateArticle(principal auth.Principal, themeID int64, title, content string) (models.Article, error) {
	if err := validateArticle(title, content); err != nil {
		return models.Article{}, err
	}
	theme, err := s.resolveTheme(themeID)
	if err != nil {
		return models.Article{}, err
	}

	article, err := s.articles.Insert(models.Article{
		Title:     title,
		Content:   content,
		ThemeID:   themeID,
		AuthorID:  principal.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return models.Article{}, err
	}
	article.AuthorName = principal.Name

	if err := s.events.Record("article.created", "info", fmt.Sprintf("%q published %q under %q", principal.Username, article.Title, theme.Name), &theme.ID); err != nil {
		log.Error().Err(err).Msg("Failed to record article event")
	}
	return article, nil
}

// GetArticle retrieves a single article.
func (s *ContentService) GetArticle(id int64) (models.Article, error) {
	article, err := s.articles.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Article{}, fmt.Errorf("%w: article %d", ErrNotFound, id)
		}
		return models.Article{}, err
	}
	return article, nil
}

// UpdateArticle overwrites an article's content. Only the stored author may
// mutate it.
func (s *ContentService) UpdateArticle(principal auth.Principal, id int64, patch ArticlePatch) (models.Article, error) {
	article, err := s.GetArticle(id)
	if err != nil {
		return models.Article{}, err
	}
	if article.AuthorID != principal.ID {
		return models.Article{}, fmt.Errorf("%w: not the author", ErrForbidden)
	}
	if err := validateArticle(patch.Title, patch.Content); err != nil {
		return models.Article{}, err
	}

	article.Title = patch.Title
	article.Content = patch.Content
	if patch.ThemeID != 0 && patch.ThemeID != article.ThemeID {
		if _, err := s.resolveTheme(patch.ThemeID); err != nil {
			return models.Article{}, err
		}
		article.ThemeID = patch.ThemeID
	}
	now := time.Now().UTC()
	article.UpdatedAt = &now

	if err := s.articles.Update(article); err != nil {
		return models.Article{}, err
	}

	if err := s.events.Record("article.updated", "info", fmt.Sprintf("%q updated %q", principal.Username, article.Title), &article.ThemeID); err != nil {
		log.Error().Err(err).Msg("Failed to record article event")
	}
	return article, nil
}

// DeleteArticle removes an article. Only the stored author may delete it;
// comments are removed by the storage cascade.
func (s *ContentService) DeleteArticle(principal auth.Principal, id int64) error {
	article, err := s.GetArticle(id)
	if err != nil {
		return err
	}
	if article.AuthorID != principal.ID {
		return fmt.Errorf("%w: not the author", ErrForbidden)
	}
	if err := s.articles.Delete(id); err != nil {
		return err
	}

	if err := s.events.Record("article.deleted", "info", fmt.Sprintf("%q deleted %q", principal.Username, article.Title), &article.ThemeID); err != nil {
		log.Error().Err(err).Msg("Failed to record article event")
	}
	return nil
}

// ListByTheme returns a theme's articles with the author name denormalized.
func (s *ContentService) ListByTheme(themeID int64) ([]models.Article, error) {
	if _, err := s.resolveTheme(themeID); err != nil {
		return nil, err
	}
	return s.articles.ListByTheme(themeID)
}

// Feed aggregates the articles of every theme the principal follows: one
// fetch per followed theme, concatenated in followed-set iteration order.
// There is no de-duplication and no ordering guarantee across themes.
func (s *ContentService) Feed(principal auth.Principal) ([]models.Article, error) {
	themes, err := s.follows.ThemesFor(principal.ID)
	if err != nil {
		return nil, err
	}

	feed := []models.Article{}
	for _, theme := range themes {
		articles, err := s.articles.ListByTheme(theme.ID)
		if err != nil {
			return nil, err
		}
		feed = append(feed, articles...)
	}
	return feed, nil
}

// ArticleExists is the existence probe used before attaching children.
func (s *ContentService) ArticleExists(id int64) (bool, error) {
	return s.articles.Exists(id)
}

func (s *ContentService) resolveTheme(themeID int64) (models.Theme, error) {
	theme, err := s.themes.GetByID(themeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, fmt.Errorf("%w: theme %d", ErrNotFound, themeID)
		}
		return models.Theme{}, err
	}
	return theme, nil
}

func validateArticle(title, content string) error {
	if title == "" || content == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	if len(content) > models.MaxArticleContentLen {
		return fmt.Errorf("%w: content exceeds %d characters", ErrValidation, models.MaxArticleContentLen)
	}
	return nil
}
