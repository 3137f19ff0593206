package models

import "time"

// Comment is a reader reply attached to an article.
type Comment struct {
	ID         int64     `json:"id"`
	ArticleID  int64     `json:"articleId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
