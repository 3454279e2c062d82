package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmailAndPassword(ctx context.Context, email, password string) (*entity.User, error)
}

type SQLUserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{db}
}

func (r *SQLUserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.Password)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *SQLUserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user := &entity.User{}

	query := `SELECT id, username, email FROM users WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *SQLUserRepository) GetUserByEmailAndPassword(ctx context.Context, email, password string) (*entity.User, error) {
	user := &entity.User{}

	query := `SELECT id, username, email FROM users WHERE email = ? AND password = ?`
	err := r.db.QueryRowContext(ctx, query, email, password).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
