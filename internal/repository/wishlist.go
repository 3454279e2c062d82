package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type WishListRepository interface {
	CreateWishList(ctx context.Context, list *entity.WishList) (*entity.WishList, error)
	GetWishList(ctx context.Context, id int) (*entity.WishList, error)
	DeleteWishList(ctx context.Context, id int) error
	GetWishListItems(ctx context.Context, wishlistID int) ([]entity.WishListItem, error)
	WishListItemExists(ctx context.Context, wishlistID, productID int) (bool, error)
	CreateWishListItem(ctx context.Context, item *entity.WishListItem) (*entity.WishListItem, error)
	DeleteWishListItem(ctx context.Context, itemID int) error
}

type SQLWishListRepository struct {
	db *sql.DB
}

func NewWishListRepository(db *sql.DB) *SQLWishListRepository {
	return &SQLWishListRepository{db}
}

func (r *SQLWishListRepository) CreateWishList(ctx context.Context, list *entity.WishList) (*entity.WishList, error) {
	query := `INSERT INTO wishlists (created_at) VALUES (?)`
	res, err := r.db.ExecContext(ctx, query, list.CreatedAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	list.ID = int(id)
	return list, nil
}

func (r *SQLWishListRepository) GetWishList(ctx context.Context, id int) (*entity.WishList, error) {
	list := &entity.WishList{}

	query := `SELECT id, created_at FROM wishlists WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&list.ID, &list.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.GetWishListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items

	return list, nil
}

func (r *SQLWishListRepository) DeleteWishList(ctx context.Context, id int) error {
	query := `DELETE FROM wishlists WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *SQLWishListRepository) GetWishListItems(ctx context.Context, wishlistID int) ([]entity.WishListItem, error) {
	var items []entity.WishListItem

	query := `
		SELECT wi.id, wi.wishlist_id, p.id, p.title, p.unit_price
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.wishlist_id = ?
		ORDER BY wi.id`
	rows, err := r.db.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.WishListItem
		err := rows.Scan(&item.ID, &item.WishListID, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice)
		if err != nil {
			return nil, err
		}
		item.ProductID = item.Product.ID
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SQLWishListRepository) WishListItemExists(ctx context.Context, wishlistID, productID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE wishlist_id = ? AND product_id = ?)`
	err := r.db.QueryRowContext(ctx, query, wishlistID, productID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SQLWishListRepository) CreateWishListItem(ctx context.Context, item *entity.WishListItem) (*entity.WishListItem, error) {
	query := `INSERT INTO wishlist_items (wishlist_id, product_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, item.WishListID, item.ProductID)
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

func (r *SQLWishListRepository) DeleteWishListItem(ctx context.Context, itemID int) error {
	query := `DELETE FROM wishlist_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, itemID)
	return err
}
