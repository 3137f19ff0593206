package store

import (
	"database/sql"

	"github.com/lmercadier/devfeed-be/internal/models"
)

// ArticleStore persists articles. Read paths denormalize the author's
// display name for presentation.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleSelect = `
	SELECT a.id, a.title, a.content, a.theme_id, a.author_id, u.name, a.created_at, a.updated_at
	FROM articles a
	JOIN users u ON u.id = a.author_id`

func scanArticle(scan func(dest ...any) error) (models.Article, error) {
	var article models.Article
	err := scan(&article.ID, &article.Title, &article.Content, &article.ThemeID,
		&article.AuthorID, &article.AuthorName, &article.CreatedAt, &article.UpdatedAt)
	return article, err
}

// Insert persists a new article and returns it with the assigned id.
func (s *ArticleStore) Insert(article models.Article) (models.Article, error) {
	stmt, err := s.db.Prepare("INSERT INTO articles (title, content, theme_id, author_id, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return models.Article{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(article.Title, article.Content, article.ThemeID, article.AuthorID, article.CreatedAt)
	if err != nil {
		return models.Article{}, err
	}
	article.ID, err = res.LastInsertId()
	if err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// GetByID retrieves an article by id.
func (s *ArticleStore) GetByID(id int64) (models.Article, error) {
	row := s.db.QueryRow(articleSelect+" WHERE a.id = ?", id)
	return scanArticle(row.Scan)
}

// Update overwrites an article's title, content, theme and updated timestamp.
func (s *ArticleStore) Update(article models.Article) error {
	_, err := s.db.Exec("UPDATE articles SET title = ?, content = ?, theme_id = ?, updated_at = ? WHERE id = ?",
		article.Title, article.Content, article.ThemeID, article.UpdatedAt, article.ID)
	return err
}

// Delete removes an article. Comments cascade at the schema level.
func (s *ArticleStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM articles WHERE id = ?", id)
	return err
}

// Exists reports whether an article with the given id is present.
func (s *ArticleStore) Exists(id int64) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM articles WHERE id = ?", id).Scan(&n)
	return n > 0, err
}

// ListByTheme returns a theme's articles, newest first.
func (s *ArticleStore) ListByTheme(themeID int64) ([]models.Article, error) {
	rows, err := s.db.Query(articleSelect+" WHERE a.theme_id = ? ORDER BY a.created_at DESC, a.id DESC", themeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Count returns the number of articles.
func (s *ArticleStore) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(1) FROM articles").Scan(&n)
	return n, err
}
