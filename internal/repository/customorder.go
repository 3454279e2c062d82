package repository

import (
	"context"
	"database/sql"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type CustomOrderRepository interface {
	CreateCustomOrder(ctx context.Context, order *entity.CustomOrder) (*entity.CustomOrder, error)
	GetCustomOrdersByCustomer(ctx context.Context, customerID int) ([]*entity.CustomOrder, error)
}

type SQLCustomOrderRepository struct {
	db *sql.DB
}

func NewCustomOrderRepository(db *sql.DB) *SQLCustomOrderRepository {
	return &SQLCustomOrderRepository{db}
}

func (r *SQLCustomOrderRepository) CreateCustomOrder(ctx context.Context, order *entity.CustomOrder) (*entity.CustomOrder, error) {
	query := `INSERT INTO custom_orders (customer_id, product_name, description, left_side_image, right_side_image, front_image, rear_image, placed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, order.CustomerID, order.ProductName, order.Description, order.LeftSideImage, order.RightSideImage, order.FrontImage, order.RearImage, order.PlacedAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order.ID = int(id)
	return order, nil
}

func (r *SQLCustomOrderRepository) GetCustomOrdersByCustomer(ctx context.Context, customerID int) ([]*entity.CustomOrder, error) {
	var orders []*entity.CustomOrder

	query := `SELECT id, customer_id, product_name, description, left_side_image, right_side_image, front_image, rear_image, placed_at FROM custom_orders WHERE customer_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var order entity.CustomOrder
		err := rows.Scan(&order.ID, &order.CustomerID, &order.ProductName, &order.Description, &order.LeftSideImage, &order.RightSideImage, &order.FrontImage, &order.RearImage, &order.PlacedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}
