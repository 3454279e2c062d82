package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

const taxRate = 0.1

type CatalogService struct {
	productRepo    repository.ProductRepository
	collectionRepo repository.CollectionRepository
	rdb            *redis.Client
}

func NewCatalogService(productRepo repository.ProductRepository, collectionRepo repository.CollectionRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		rdb:            rdb,
	}
}

// GetProduct serves a single product, cache first.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
		}
		if cached != "" {
			var product entity.Product
			uerr := json.Unmarshal([]byte(cached), &product)
			if uerr == nil {
				return &product, nil
			}
			logger.Error().Err(uerr).Msgf("Error unmarshalling cached product %d", id)
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no product with the given ID was found", ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}
	product.PriceWithTax = product.UnitPrice * (1 + taxRate)

	images, err := s.productRepo.GetProductImages(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Images = images

	if s.rdb != nil {
		payload, _ := json.Marshal(product)
		if err := s.rdb.Set(ctx, key, payload, 1*time.Minute).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error setting product %d in cache", id)
		}
	}

	return product, nil
}

// GetProductStock returns just the live inventory count.
func (s *CatalogService) GetProductStock(ctx context.Context, id int) (int, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.Inventory, nil
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return nil, err
	}
	for _, product := range products {
		product.PriceWithTax = product.UnitPrice * (1 + taxRate)
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if _, err := s.collectionRepo.GetCollectionByID(ctx, product.CollectionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no collection with the given ID was found", ErrNotFound)
		}
		return nil, err
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetProductByID(ctx, product.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no product with the given ID was found", ErrNotFound)
		}
		return nil, err
	}

	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", product.ID)
		return nil, err
	}
	s.evictProduct(ctx, product.ID)
	return updated, nil
}

// DeleteProduct refuses to delete a product an order item still references.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	count, err := s.productRepo.CountOrderItemsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: product cannot be deleted because it is associated with an order item", ErrValidation)
	}

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	s.evictProduct(ctx, id)
	return nil
}

func (s *CatalogService) AddProductImage(ctx context.Context, productID int, image string) (*entity.ProductImage, error) {
	exists, err := s.productRepo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no product with the given ID was found", ErrNotFound)
	}

	created, err := s.productRepo.CreateProductImage(ctx, &entity.ProductImage{ProductID: productID, Image: image})
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding image to product %d", productID)
		return nil, err
	}
	s.evictProduct(ctx, productID)
	return created, nil
}

func (s *CatalogService) GetProductImages(ctx context.Context, productID int) ([]entity.ProductImage, error) {
	return s.productRepo.GetProductImages(ctx, productID)
}

func (s *CatalogService) DeleteProductImage(ctx context.Context, productID, imageID int) error {
	if err := s.productRepo.DeleteProductImage(ctx, imageID); err != nil {
		return err
	}
	s.evictProduct(ctx, productID)
	return nil
}

func (s *CatalogService) GetCollections(ctx context.Context) ([]*entity.Collection, error) {
	return s.collectionRepo.GetCollections(ctx)
}

func (s *CatalogService) GetCollection(ctx context.Context, id int) (*entity.Collection, error) {
	collection, err := s.collectionRepo.GetCollectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no collection with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	return collection, nil
}

func (s *CatalogService) CreateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error) {
	if collection.Title == "" {
		return nil, fmt.Errorf("%w: collection title is required", ErrValidation)
	}
	return s.collectionRepo.CreateCollection(ctx, collection)
}

func (s *CatalogService) UpdateCollection(ctx context.Context, collection *entity.Collection) (*entity.Collection, error) {
	if collection.Title == "" {
		return nil, fmt.Errorf("%w: collection title is required", ErrValidation)
	}
	if _, err := s.collectionRepo.GetCollectionByID(ctx, collection.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no collection with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	return s.collectionRepo.UpdateCollection(ctx, collection)
}

// DeleteCollection refuses to delete a collection that still has products.
func (s *CatalogService) DeleteCollection(ctx context.Context, id int) error {
	count, err := s.collectionRepo.CountProductsByCollection(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: collection cannot be deleted because it includes one or more products", ErrValidation)
	}
	return s.collectionRepo.DeleteCollection(ctx, id)
}

func (s *CatalogService) evictProduct(ctx context.Context, id int) {
	if s.rdb == nil {
		return
	}
	key := fmt.Sprintf("product:%d", id)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error invalidating cache for product %d", id)
	}
}

func validateProduct(product *entity.Product) error {
	if product.Title == "" {
		return fmt.Errorf("%w: product title is required", ErrValidation)
	}
	if product.UnitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive", ErrValidation)
	}
	if product.Inventory < 0 {
		return fmt.Errorf("%w: inventory cannot be negative", ErrValidation)
	}
	return nil
}
