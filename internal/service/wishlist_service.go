package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

type WishListService struct {
	wishlistRepo repository.WishListRepository
	productRepo  repository.ProductRepository
}

func NewWishListService(wishlistRepo repository.WishListRepository, productRepo repository.ProductRepository) *WishListService {
	return &WishListService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *WishListService) CreateWishList(ctx context.Context) (*entity.WishList, error) {
	list := &entity.WishList{CreatedAt: time.Now().UTC()}
	created, err := s.wishlistRepo.CreateWishList(ctx, list)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating wishlist")
		return nil, err
	}
	return created, nil
}

func (s *WishListService) GetWishList(ctx context.Context, id int) (*entity.WishList, error) {
	list, err := s.wishlistRepo.GetWishList(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no wishlist with the given ID was found", ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error getting wishlist %d", id)
		return nil, err
	}
	return list, nil
}

func (s *WishListService) DeleteWishList(ctx context.Context, id int) error {
	return s.wishlistRepo.DeleteWishList(ctx, id)
}

// AddItem validates before touching anything: the product must exist and
// the (wishlist, product) pair must not already be present. On any
// validation failure nothing is written.
func (s *WishListService) AddItem(ctx context.Context, wishlistID, productID int) (*entity.WishListItem, error) {
	if _, err := s.wishlistRepo.GetWishList(ctx, wishlistID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no wishlist with the given ID was found", ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.productRepo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no product with the given ID was found", ErrNotFound)
	}

	duplicate, err := s.wishlistRepo.WishListItemExists(ctx, wishlistID, productID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateItem
	}

	item := &entity.WishListItem{
		WishListID: wishlistID,
		ProductID:  productID,
	}
	created, err := s.wishlistRepo.CreateWishListItem(ctx, item)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding product %d to wishlist %d", productID, wishlistID)
		return nil, err
	}
	return created, nil
}

func (s *WishListService) RemoveItem(ctx context.Context, itemID int) error {
	return s.wishlistRepo.DeleteWishListItem(ctx, itemID)
}
