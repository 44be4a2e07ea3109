package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bloodlink/bloodlink-tn/internal/model"
	"github.com/bloodlink/bloodlink-tn/internal/utils"
)

// UserRepo provides access to the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

const userColumns = "id,username,email,password_hash,user_type,phone,created_at"

// Create inserts a user and returns its ID. The email is normalized to
// lower case; the role must already be validated by the caller.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role, phone string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, user_type, phone) VALUES (?,?,?,?,?)",
		username, email, hash, role, phone)
	if err != nil {
		// MySQL 1062 = duplicate key; the constraint name tells us which.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "uq_users_email") {
				return 0, ErrEmailExists
			}
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches a user by username or email, so clients may sign in
// with either. Returns sql.ErrNoRows when no account matches.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	login = strings.TrimSpace(login)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		login, strings.ToLower(login)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.UserType, &u.Phone, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.UserType, &u.Phone, &u.CreatedAt)
	return u, err
}
