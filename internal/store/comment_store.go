package store

import (
	"database/sql"

	"github.com/lmercadier/devfeed-be/internal/models"
)

// CommentStore persists article comments.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Insert persists a new comment and returns it with the assigned id.
func (s *CommentStore) Insert(comment models.Comment) (models.Comment, error) {
	stmt, err := s.db.Prepare("INSERT INTO comments (article_id, author_id, content, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return models.Comment{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(comment.ArticleID, comment.AuthorID, comment.Content, comment.CreatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	comment.ID, err = res.LastInsertId()
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// ListByArticle returns an article's comments, oldest first, with the
// author's display name denormalized.
func (s *CommentStore) ListByArticle(articleID int64) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.article_id, c.author_id, u.name, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.article_id = ?
		ORDER BY c.created_at, c.id`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.ArticleID, &comment.AuthorID,
			&comment.AuthorName, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Count returns the number of comments.
func (s *CommentStore) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(1) FROM comments").Scan(&n)
	return n, err
}
