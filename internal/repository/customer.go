package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	GetCustomerByID(ctx context.Context, id int) (*entity.Customer, error)
	GetCustomerByUserID(ctx context.Context, userID int) (*entity.Customer, error)
	GetCustomers(ctx context.Context) ([]*entity.Customer, error)
	UpdateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
}

type SQLCustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *SQLCustomerRepository {
	return &SQLCustomerRepository{db}
}

func (r *SQLCustomerRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	query := `INSERT INTO customers (user_id, gender, birth_date) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, customer.UserID, customer.Gender, customer.BirthDate)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	customer.ID = int(id)
	return customer, nil
}

func (r *SQLCustomerRepository) GetCustomerByID(ctx context.Context, id int) (*entity.Customer, error) {
	customer := &entity.Customer{}

	query := `SELECT id, user_id, gender, birth_date FROM customers WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&customer.ID, &customer.UserID, &customer.Gender, &customer.BirthDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *SQLCustomerRepository) GetCustomerByUserID(ctx context.Context, userID int) (*entity.Customer, error) {
	customer := &entity.Customer{}

	query := `SELECT id, user_id, gender, birth_date FROM customers WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&customer.ID, &customer.UserID, &customer.Gender, &customer.BirthDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *SQLCustomerRepository) GetCustomers(ctx context.Context) ([]*entity.Customer, error) {
	var customers []*entity.Customer

	query := `SELECT id, user_id, gender, birth_date FROM customers ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var customer entity.Customer
		err := rows.Scan(&customer.ID, &customer.UserID, &customer.Gender, &customer.BirthDate)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}

	return customers, rows.Err()
}

func (r *SQLCustomerRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	query := `UPDATE customers SET gender = ?, birth_date = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, customer.Gender, customer.BirthDate, customer.ID)
	if err != nil {
		return nil, err
	}
	return customer, nil
}
