package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	GetProducts(ctx context.Context) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ProductExists(ctx context.Context, id int) (bool, error)
	CountOrderItemsByProduct(ctx context.Context, productID int) (int, error)
	GetProductImages(ctx context.Context, productID int) ([]entity.ProductImage, error)
	CreateProductImage(ctx context.Context, image *entity.ProductImage) (*entity.ProductImage, error)
	DeleteProductImage(ctx context.Context, id int) error
}

type SQLProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *SQLProductRepository {
	return &SQLProductRepository{db}
}

func (r *SQLProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	product := &entity.Product{}

	query := `SELECT id, title, slug, description, unit_price, inventory, collection_id, cover_image FROM products WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.Title, &product.Slug, &product.Description, &product.UnitPrice, &product.Inventory, &product.CollectionID, &product.CoverImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *SQLProductRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	query := `SELECT id, title, slug, description, unit_price, inventory, collection_id, cover_image FROM products ORDER BY title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var product entity.Product
		err := rows.Scan(&product.ID, &product.Title, &product.Slug, &product.Description, &product.UnitPrice, &product.Inventory, &product.CollectionID, &product.CoverImage)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (r *SQLProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (title, slug, description, unit_price, inventory, collection_id, cover_image) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Title, product.Slug, product.Description, product.UnitPrice, product.Inventory, product.CollectionID, product.CoverImage)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

func (r *SQLProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `UPDATE products SET title = ?, slug = ?, description = ?, unit_price = ?, inventory = ?, collection_id = ?, cover_image = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, product.Title, product.Slug, product.Description, product.UnitPrice, product.Inventory, product.CollectionID, product.CoverImage, product.ID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *SQLProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return nil
}

func (r *SQLProductRepository) ProductExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SQLProductRepository) CountOrderItemsByProduct(ctx context.Context, productID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM order_items WHERE product_id = ?`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLProductRepository) GetProductImages(ctx context.Context, productID int) ([]entity.ProductImage, error) {
	var images []entity.ProductImage

	query := `SELECT id, product_id, image FROM product_images WHERE product_id = ?`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var image entity.ProductImage
		err := rows.Scan(&image.ID, &image.ProductID, &image.Image)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	return images, rows.Err()
}

func (r *SQLProductRepository) CreateProductImage(ctx context.Context, image *entity.ProductImage) (*entity.ProductImage, error) {
	query := `INSERT INTO product_images (product_id, image) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, image.ProductID, image.Image)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	image.ID = int(id)
	return image, nil
}

func (r *SQLProductRepository) DeleteProductImage(ctx context.Context, id int) error {
	query := `DELETE FROM product_images WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return nil
}
