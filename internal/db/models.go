package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Username     string
	DisplayName  string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Category struct {
	ID          int64
	Slug        string
	Title       string
	IsPublished bool
	CreatedAt   time.Time
}

type Post struct {
	ID          int64
	AuthorID    int64
	CategoryID  int64
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	ImageUrl    sql.NullString
	CreatedAt   time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}
