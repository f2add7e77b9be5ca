package db

import (
	"context"
	"database/sql"
	"time"
)

// visibleClause é o predicado de visibilidade usado por todas as listagens:
// publicado, categoria publicada e pub_date alcançada — ou o viewer é o autor.
// Viewer anônimo entra como id 0, que nunca corresponde a um autor real.
const visibleClause = `
((p.is_published = 1 AND c.is_published = 1 AND p.pub_date <= ?) OR p.author_id = ?)`

const postRowColumns = `
p.id, p.author_id, p.category_id, p.title, p.text, p.pub_date, p.is_published, p.image_url, p.created_at,
u.username, c.slug, c.title,
(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id)`

// PostRow é um post com os metadados exibidos nas listagens.
type PostRow struct {
	Post
	AuthorUsername string
	CategorySlug   string
	CategoryTitle  string
	CommentCount   int64
}

func scanPostRow(rows *sql.Rows) (PostRow, error) {
	var r PostRow
	err := rows.Scan(
		&r.ID, &r.AuthorID, &r.CategoryID, &r.Title, &r.Text, &r.PubDate,
		&r.IsPublished, &r.ImageUrl, &r.CreatedAt,
		&r.AuthorUsername, &r.CategorySlug, &r.CategoryTitle,
		&r.CommentCount,
	)
	return r, err
}

func (q *Queries) queryPostRows(ctx context.Context, query string, args ...any) ([]PostRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PostRow
	for rows.Next() {
		r, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const createPost = `
INSERT INTO posts (author_id, category_id, title, text, pub_date, is_published, image_url)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, author_id, category_id, title, text, pub_date, is_published, image_url, created_at
`

type CreatePostParams struct {
	AuthorID    int64
	CategoryID  int64
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	ImageUrl    sql.NullString
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.AuthorID,
		arg.CategoryID,
		arg.Title,
		arg.Text,
		arg.PubDate,
		arg.IsPublished,
		arg.ImageUrl,
	)
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Text, &p.PubDate,
		&p.IsPublished, &p.ImageUrl, &p.CreatedAt)
	return p, err
}

const getPostByID = `
SELECT id, author_id, category_id, title, text, pub_date, is_published, image_url, created_at
FROM posts
WHERE id = ?
`

func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByID, id)
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Text, &p.PubDate,
		&p.IsPublished, &p.ImageUrl, &p.CreatedAt)
	return p, wrapNoRows(err)
}

const updatePost = `
UPDATE posts
SET category_id = ?, title = ?, text = ?, pub_date = ?, is_published = ?, image_url = ?
WHERE id = ?
`

type UpdatePostParams struct {
	CategoryID  int64
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	ImageUrl    sql.NullString
	ID          int64
}

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	_, err := q.db.ExecContext(ctx, updatePost,
		arg.CategoryID,
		arg.Title,
		arg.Text,
		arg.PubDate,
		arg.IsPublished,
		arg.ImageUrl,
		arg.ID,
	)
	return err
}

const deletePost = `
DELETE FROM posts
WHERE id = ?
`

// DeletePost remove o post; os comentários caem via ON DELETE CASCADE.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

const listVisiblePosts = `
SELECT` + postRowColumns + `
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN categories c ON c.id = p.category_id
WHERE` + visibleClause + `
ORDER BY p.pub_date DESC, p.id DESC
LIMIT ? OFFSET ?
`

type ListVisiblePostsParams struct {
	Now      time.Time
	ViewerID int64
	Limit    int64
	Offset   int64
}

func (q *Queries) ListVisiblePosts(ctx context.Context, arg ListVisiblePostsParams) ([]PostRow, error) {
	return q.queryPostRows(ctx, listVisiblePosts, arg.Now, arg.ViewerID, arg.Limit, arg.Offset)
}

const countVisiblePosts = `
SELECT COUNT(*)
FROM posts p
JOIN categories c ON c.id = p.category_id
WHERE` + visibleClause + `
`

type CountVisiblePostsParams struct {
	Now      time.Time
	ViewerID int64
}

func (q *Queries) CountVisiblePosts(ctx context.Context, arg CountVisiblePostsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVisiblePosts, arg.Now, arg.ViewerID).Scan(&count)
	return count, err
}

const listCategoryPosts = `
SELECT` + postRowColumns + `
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN categories c ON c.id = p.category_id
WHERE p.category_id = ? AND` + visibleClause + `
ORDER BY p.pub_date DESC, p.id DESC
LIMIT ? OFFSET ?
`

type ListCategoryPostsParams struct {
	CategoryID int64
	Now        time.Time
	ViewerID   int64
	Limit      int64
	Offset     int64
}

func (q *Queries) ListCategoryPosts(ctx context.Context, arg ListCategoryPostsParams) ([]PostRow, error) {
	return q.queryPostRows(ctx, listCategoryPosts, arg.CategoryID, arg.Now, arg.ViewerID, arg.Limit, arg.Offset)
}

const countCategoryPosts = `
SELECT COUNT(*)
FROM posts p
JOIN categories c ON c.id = p.category_id
WHERE p.category_id = ? AND` + visibleClause + `
`

type CountCategoryPostsParams struct {
	CategoryID int64
	Now        time.Time
	ViewerID   int64
}

func (q *Queries) CountCategoryPosts(ctx context.Context, arg CountCategoryPostsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCategoryPosts, arg.CategoryID, arg.Now, arg.ViewerID).Scan(&count)
	return count, err
}

const listAuthorPosts = `
SELECT` + postRowColumns + `
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN categories c ON c.id = p.category_id
WHERE p.author_id = ? AND` + visibleClause + `
ORDER BY p.pub_date DESC, p.id DESC
LIMIT ? OFFSET ?
`

type ListAuthorPostsParams struct {
	AuthorID int64
	Now      time.Time
	ViewerID int64
	Limit    int64
	Offset   int64
}

// ListAuthorPosts lista os posts de um autor sob o mesmo predicado de
// visibilidade: quando o viewer é o próprio autor, a cláusula de bypass
// libera rascunhos e posts agendados.
func (q *Queries) ListAuthorPosts(ctx context.Context, arg ListAuthorPostsParams) ([]PostRow, error) {
	return q.queryPostRows(ctx, listAuthorPosts, arg.AuthorID, arg.Now, arg.ViewerID, arg.Limit, arg.Offset)
}

const countAuthorPosts = `
SELECT COUNT(*)
FROM posts p
JOIN categories c ON c.id = p.category_id
WHERE p.author_id = ? AND` + visibleClause + `
`

type CountAuthorPostsParams struct {
	AuthorID int64
	Now      time.Time
	ViewerID int64
}

func (q *Queries) CountAuthorPosts(ctx context.Context, arg CountAuthorPostsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAuthorPosts, arg.AuthorID, arg.Now, arg.ViewerID).Scan(&count)
	return count, err
}
