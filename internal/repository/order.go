package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type OrderRepository interface {
	GetOrderByID(ctx context.Context, id int) (*entity.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID int) ([]*entity.Order, error)
	GetOrders(ctx context.Context) ([]*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
	WithTx(ctx context.Context, fn func(tx OrderTx) error) error
}

// OrderTx is the transaction-scoped store the placement workflow runs
// against. Everything done through it commits or rolls back as one unit.
type OrderTx interface {
	CreateOrder(ctx context.Context, customerID int) (*entity.Order, error)
	CartItems(ctx context.Context, cartID string) ([]entity.CartItem, error)
	// Reserve locks the product row, grants min(inventory, requested) and
	// decrements inventory by the granted amount. A grant of zero performs
	// no write. Returns ErrNotFound if the product no longer exists.
	Reserve(ctx context.Context, productID, requested int) (*entity.Product, int, error)
	InsertOrderItems(ctx context.Context, orderID int, items []entity.OrderItem) error
	DeleteCart(ctx context.Context, cartID string) error
}

type SQLOrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{db}
}

func (r *SQLOrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	order := &entity.Order{}

	query := `SELECT id, customer_id, placed_at, payment_status FROM orders WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.CustomerID, &order.PlacedAt, &order.PaymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *SQLOrderRepository) GetOrdersByCustomer(ctx context.Context, customerID int) ([]*entity.Order, error) {
	query := `SELECT id, customer_id, placed_at, payment_status FROM orders WHERE customer_id = ? ORDER BY id`
	return r.queryOrders(ctx, query, customerID)
}

func (r *SQLOrderRepository) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	query := `SELECT id, customer_id, placed_at, payment_status FROM orders ORDER BY id`
	return r.queryOrders(ctx, query)
}

func (r *SQLOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(&order.ID, &order.CustomerID, &order.PlacedAt, &order.PaymentStatus)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.getOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *SQLOrderRepository) getOrderItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	var items []entity.OrderItem

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.title, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductTitle, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SQLOrderRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE orders SET payment_status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLOrderRepository) WithTx(ctx context.Context, fn func(tx OrderTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&sqlOrderTx{tx}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

type sqlOrderTx struct {
	tx *sql.Tx
}

func (t *sqlOrderTx) CreateOrder(ctx context.Context, customerID int) (*entity.Order, error) {
	placedAt := time.Now().UTC()

	query := `INSERT INTO orders (customer_id, placed_at, payment_status) VALUES (?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, query, customerID, placedAt, entity.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &entity.Order{
		ID:            int(id),
		CustomerID:    customerID,
		PlacedAt:      placedAt,
		PaymentStatus: entity.PaymentStatusPending,
	}, nil
}

func (t *sqlOrderTx) CartItems(ctx context.Context, cartID string) ([]entity.CartItem, error) {
	var items []entity.CartItem

	query := `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = ? ORDER BY id`
	rows, err := t.tx.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.CartItem
		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (t *sqlOrderTx) Reserve(ctx context.Context, productID, requested int) (*entity.Product, int, error) {
	product := &entity.Product{}

	// Row lock: concurrent placements against the same product serialize
	// here, so the decrement below cannot oversell.
	query := `SELECT id, title, unit_price, inventory FROM products WHERE id = ? FOR UPDATE`
	err := t.tx.QueryRowContext(ctx, query, productID).Scan(&product.ID, &product.Title, &product.UnitPrice, &product.Inventory)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	granted := requested
	if product.Inventory < granted {
		granted = product.Inventory
	}
	if granted == 0 {
		return product, 0, nil
	}

	update := `UPDATE products SET inventory = inventory - ? WHERE id = ? AND inventory >= ?`
	res, err := t.tx.ExecContext(ctx, update, granted, productID, granted)
	if err != nil {
		return nil, 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, 0, err
	}
	if affected == 0 {
		// cannot happen while the row lock is held; fail the transaction
		return nil, 0, errors.New("inventory decrement lost its row lock")
	}

	product.Inventory -= granted
	return product, granted, nil
}

func (t *sqlOrderTx) InsertOrderItems(ctx context.Context, orderID int, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	// Batch insert, one statement for all rows
	query := `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES `

	var values []interface{}
	for _, item := range items {
		query += "(?, ?, ?, ?),"
		values = append(values, orderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	// Remove the trailing comma
	query = query[:len(query)-1]

	_, err := t.tx.ExecContext(ctx, query, values...)
	return err
}

func (t *sqlOrderTx) DeleteCart(ctx context.Context, cartID string) error {
	query := `DELETE FROM carts WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, query, cartID)
	return err
}
