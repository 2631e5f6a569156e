package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// User mirrors the 'users' table. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID       uint64
	Name     string
	Email    string
	Password string
	Role     string
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user row and returns it with the generated id. The email
// unique key maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password, role) VALUES (?,?,?,?)",
		name, email, passwordHash, role)
	if err != nil {
		if isDuplicate(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{ID: uint64(id), Name: name, Email: email, Password: passwordHash, Role: role}, nil
}

// GetByEmail fetches a user by normalized email. ErrNotFound when no match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password,role FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by primary key. ErrNotFound when no match.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password,role FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// Update rewrites name, email and role for a user and returns the updated
// row. No route calls this yet; it exists as a store capability.
func (r *UserRepo) Update(ctx context.Context, id uint64, name, email, role string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, role=? WHERE id=?",
		name, email, role, id)
	if err != nil {
		if isDuplicate(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user and returns the row as it was before deletion.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id); err != nil {
		return User{}, err
	}
	return u, nil
}
