package db

import "context"

const createCategory = `
INSERT INTO categories (slug, title, is_published)
VALUES (?, ?, ?)
RETURNING id, slug, title, is_published, created_at
`

type CreateCategoryParams struct {
	Slug        string
	Title       string
	IsPublished bool
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory, arg.Slug, arg.Title, arg.IsPublished)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.Title, &c.IsPublished, &c.CreatedAt)
	return c, err
}

const getCategoryByID = `
SELECT id, slug, title, is_published, created_at
FROM categories
WHERE id = ?
`

func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategoryByID, id)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.Title, &c.IsPublished, &c.CreatedAt)
	return c, wrapNoRows(err)
}

const getCategoryBySlug = `
SELECT id, slug, title, is_published, created_at
FROM categories
WHERE slug = ?
`

func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategoryBySlug, slug)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.Title, &c.IsPublished, &c.CreatedAt)
	return c, wrapNoRows(err)
}

const listPublishedCategories = `
SELECT id, slug, title, is_published, created_at
FROM categories
WHERE is_published = 1
ORDER BY title
`

func (q *Queries) ListPublishedCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
