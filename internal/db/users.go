package db

import "context"

const createUser = `
INSERT INTO users (username, display_name, email, password_hash)
VALUES (?, ?, ?, ?)
RETURNING id, username, display_name, email, password_hash, created_at
`

type CreateUserParams struct {
	Username     string
	DisplayName  string
	Email        string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Username,
		arg.DisplayName,
		arg.Email,
		arg.PasswordHash,
	)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, username, display_name, email, password_hash, created_at
FROM users
WHERE id = ?
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, wrapNoRows(err)
}

const getUserByUsername = `
SELECT id, username, display_name, email, password_hash, created_at
FROM users
WHERE username = ?
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, wrapNoRows(err)
}

const updateUserProfile = `
UPDATE users
SET display_name = ?, email = ?
WHERE id = ?
`

type UpdateUserProfileParams struct {
	DisplayName string
	Email       string
	ID          int64
}

func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) error {
	_, err := q.db.ExecContext(ctx, updateUserProfile, arg.DisplayName, arg.Email, arg.ID)
	return err
}
