package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

type CollectionRepository interface {
	GetCollectionByID(ctx context.Context, id int) (*entity.Collection, error)
	GetCollections(ctx context.Context) ([]*entity.Collection, error)
	CreateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error)
	UpdateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error)
	DeleteCollection(ctx context.Context, id int) error
	CountProductsByCollection(ctx context.Context, collectionID int) (int, error)
}

type SQLCollectionRepository struct {
	db *sql.DB
}

func NewCollectionRepository(db *sql.DB) *SQLCollectionRepository {
	return &SQLCollectionRepository{db}
}

func (r *SQLCollectionRepository) GetCollectionByID(ctx context.Context, id int) (*entity.Collection, error) {
	collection := &entity.Collection{}

	query := `SELECT id, title FROM collections WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&collection.ID, &collection.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return collection, nil
}

func (r *SQLCollectionRepository) GetCollections(ctx context.Context) ([]*entity.Collection, error) {
	var collections []*entity.Collection

	query := `SELECT id, title FROM collections ORDER BY title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var collection entity.Collection
		err := rows.Scan(&collection.ID, &collection.Title)
		if err != nil {
			return nil, err
		}
		collections = append(collections, &collection)
	}

	return collections, rows.Err()
}

func (r *SQLCollectionRepository) CreateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error) {
	query := `INSERT INTO collections (title) VALUES (?)`
	res, err := r.db.ExecContext(ctx, query, collection.Title)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	collection.ID = int(id)
	return collection, nil
}

func (r *SQLCollectionRepository) UpdateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error) {
	query := `UPDATE collections SET title = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, collection.Title, collection.ID)
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (r *SQLCollectionRepository) DeleteCollection(ctx context.Context, id int) error {
	query := `DELETE FROM collections WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return nil
}

func (r *SQLCollectionRepository) CountProductsByCollection(ctx context.Context, collectionID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products WHERE collection_id = ?`
	err := r.db.QueryRowContext(ctx, query, collectionID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
