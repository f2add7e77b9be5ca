package db

import "context"

const createComment = `
INSERT INTO comments (post_id, author_id, text)
VALUES (?, ?, ?)
RETURNING id, post_id, author_id, text, created_at
`

type CreateCommentParams struct {
	PostID   int64
	AuthorID int64
	Text     string
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment, arg.PostID, arg.AuthorID, arg.Text)
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt)
	return c, err
}

const getCommentByID = `
SELECT id, post_id, author_id, text, created_at
FROM comments
WHERE id = ?
`

func (q *Queries) GetCommentByID(ctx context.Context, id int64) (Comment, error) {
	row := q.db.QueryRowContext(ctx, getCommentByID, id)
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt)
	return c, wrapNoRows(err)
}

// CommentRow é um comentário com o username do autor para exibição.
type CommentRow struct {
	Comment
	AuthorUsername string
}

const listPostComments = `
SELECT cm.id, cm.post_id, cm.author_id, cm.text, cm.created_at, u.username
FROM comments cm
JOIN users u ON u.id = cm.author_id
WHERE cm.post_id = ?
ORDER BY cm.created_at ASC, cm.id ASC
`

func (q *Queries) ListPostComments(ctx context.Context, postID int64) ([]CommentRow, error) {
	rows, err := q.db.QueryContext(ctx, listPostComments, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CommentRow
	for rows.Next() {
		var c CommentRow
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.AuthorUsername); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const updateComment = `
UPDATE comments
SET text = ?
WHERE id = ?
`

type UpdateCommentParams struct {
	Text string
	ID   int64
}

func (q *Queries) UpdateComment(ctx context.Context, arg UpdateCommentParams) error {
	_, err := q.db.ExecContext(ctx, updateComment, arg.Text, arg.ID)
	return err
}

const deleteComment = `
DELETE FROM comments
WHERE id = ?
`

func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteComment, id)
	return err
}
