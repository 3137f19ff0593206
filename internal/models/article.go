package models

import "time"

// MaxArticleContentLen bounds the content column.
const MaxArticleContentLen = 2000

// Article is a post published by a user under a theme.
type Article struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	ThemeID    int64      `json:"themeId"`
	AuthorID   int64      `json:"authorId"`
	AuthorName string     `json:"authorName,omitempty"` // denormalized for listings
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}
