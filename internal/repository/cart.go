package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *entity.Cart) error
	GetCart(ctx context.Context, id string) (*entity.Cart, error)
	GetCartItems(ctx context.Context, cartID string) ([]entity.CartItem, error)
	GetCartItem(ctx context.Context, cartID string, productID int) (*entity.CartItem, error)
	CreateCartItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, itemID, quantity int) error
	DeleteCartItem(ctx context.Context, itemID int) error
	DeleteCart(ctx context.Context, id string) error
	WithTx(ctx context.Context, fn func(tx CartTx) error) error
}

// CartTx is the transaction-scoped view the reconciler works against.
// LinesWithInventory is the single consistent read; the mutations below
// apply to that same snapshot.
type CartTx interface {
	LinesWithInventory(ctx context.Context, cartID string) ([]entity.CartLine, error)
	SetItemQuantity(ctx context.Context, itemID, quantity int) error
	RemoveItem(ctx context.Context, itemID int) error
}

type SQLCartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *SQLCartRepository {
	return &SQLCartRepository{db}
}

func (r *SQLCartRepository) CreateCart(ctx context.Context, cart *entity.Cart) error {
	query := `INSERT INTO carts (id, created_at) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, cart.ID, cart.CreatedAt)
	return err
}

func (r *SQLCartRepository) GetCart(ctx context.Context, id string) (*entity.Cart, error) {
	cart := &entity.Cart{}

	query := `SELECT id, created_at FROM carts WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return cart, nil
}

func (r *SQLCartRepository) GetCartItems(ctx context.Context, cartID string) ([]entity.CartItem, error) {
	var items []entity.CartItem

	query := `
		SELECT ci.id, ci.cart_id, ci.quantity, p.id, p.title, p.unit_price, p.inventory
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.id`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.CartItem
		err := rows.Scan(&item.ID, &item.CartID, &item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice, &item.Product.Inventory)
		if err != nil {
			return nil, err
		}
		item.ProductID = item.Product.ID
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SQLCartRepository) GetCartItem(ctx context.Context, cartID string, productID int) (*entity.CartItem, error) {
	item := &entity.CartItem{}

	query := `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = ? AND product_id = ?`
	err := r.db.QueryRowContext(ctx, query, cartID, productID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *SQLCartRepository) CreateCartItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	query := `INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, item.CartID, item.ProductID, item.Quantity)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	item.ID = int(id)
	return item, nil
}

func (r *SQLCartRepository) UpdateCartItemQuantity(ctx context.Context, itemID, quantity int) error {
	query := `UPDATE cart_items SET quantity = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, quantity, itemID)
	return err
}

func (r *SQLCartRepository) DeleteCartItem(ctx context.Context, itemID int) error {
	query := `DELETE FROM cart_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, itemID)
	return err
}

func (r *SQLCartRepository) DeleteCart(ctx context.Context, id string) error {
	// cart_items cascade with the cart row
	query := `DELETE FROM carts WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *SQLCartRepository) WithTx(ctx context.Context, fn func(tx CartTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&sqlCartTx{tx}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

type sqlCartTx struct {
	tx *sql.Tx
}

func (t *sqlCartTx) LinesWithInventory(ctx context.Context, cartID string) ([]entity.CartLine, error) {
	var lines []entity.CartLine

	query := `
		SELECT ci.id, p.id, p.title, p.unit_price, ci.quantity, p.inventory
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.id`
	rows, err := t.tx.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.CartLine
		err := rows.Scan(&line.ItemID, &line.ProductID, &line.ProductTitle, &line.UnitPrice, &line.Quantity, &line.Inventory)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (t *sqlCartTx) SetItemQuantity(ctx context.Context, itemID, quantity int) error {
	query := `UPDATE cart_items SET quantity = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, query, quantity, itemID)
	return err
}

func (t *sqlCartTx) RemoveItem(ctx context.Context, itemID int) error {
	query := `DELETE FROM cart_items WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, query, itemID)
	return err
}
