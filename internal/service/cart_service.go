package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CreateCart creates an empty cart keyed by a fresh opaque token.
func (s *CartService) CreateCart(ctx context.Context) (*entity.Cart, error) {
	cart := &entity.Cart{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		logger.Error().Err(err).Msg("Error creating cart")
		return nil, err
	}
	return cart, nil
}

// GetCart returns the cart with its items and total price.
func (s *CartService) GetCart(ctx context.Context, id string) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetCart(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no cart with the given ID was found", ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error getting cart %s", id)
		return nil, err
	}

	items, err := s.cartRepo.GetCartItems(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].TotalPrice = float64(items[i].Quantity) * items[i].Product.UnitPrice
		cart.TotalPrice += items[i].TotalPrice
	}
	cart.Items = items

	return cart, nil
}

// DeleteCart drops the cart and its items.
func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	return s.cartRepo.DeleteCart(ctx, id)
}

// AddItem puts quantity units of a product into the cart. A line for the
// same product already in the cart has its quantity incremented instead,
// keeping one line per product. The requested quantity may not exceed the
// product's inventory.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	if _, err := s.cartRepo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no cart with the given ID was found", ErrNotFound)
		}
		return nil, err
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no product with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	if quantity > product.Inventory {
		return nil, fmt.Errorf("%w: quantity should be less or equal to %d", ErrValidation, product.Inventory)
	}

	existing, err := s.cartRepo.GetCartItem(ctx, cartID, productID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateCartItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			logger.Error().Err(err).Msgf("Error updating cart item %d", existing.ID)
			return nil, err
		}
		return existing, nil
	}

	item := &entity.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	created, err := s.cartRepo.CreateCartItem(ctx, item)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding product %d to cart %s", productID, cartID)
		return nil, err
	}
	return created, nil
}

// UpdateItem replaces a cart line's quantity, bounded by inventory.
func (s *CartService) UpdateItem(ctx context.Context, cartID string, productID, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	item, err := s.cartRepo.GetCartItem(ctx, cartID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no cart item for the given product was found", ErrNotFound)
		}
		return nil, err
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no product with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	if quantity > product.Inventory {
		return nil, fmt.Errorf("%w: quantity should be less or equal to %d", ErrValidation, product.Inventory)
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateCartItemQuantity(ctx, item.ID, quantity); err != nil {
		logger.Error().Err(err).Msgf("Error updating cart item %d", item.ID)
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a single line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID int) error {
	item, err := s.cartRepo.GetCartItem(ctx, cartID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: no cart item for the given product was found", ErrNotFound)
		}
		return err
	}
	return s.cartRepo.DeleteCartItem(ctx, item.ID)
}

// RefreshCart reconciles the cart against live inventory. Lines whose
// product sold out are removed; lines requesting more than is left are
// clamped down to the available inventory. Classification and the
// corrective writes both come from one consistent read, so the reported
// diff always matches what was actually changed.
func (s *CartService) RefreshCart(ctx context.Context, cartID string) (*entity.RefreshedCart, error) {
	if _, err := s.cartRepo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no cart with the given ID was found", ErrNotFound)
		}
		return nil, err
	}

	deleted := []entity.ChangedItem{}
	changed := []entity.ChangedItem{}

	err := s.cartRepo.WithTx(ctx, func(tx repository.CartTx) error {
		lines, err := tx.LinesWithInventory(ctx, cartID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			switch {
			case line.Inventory == 0:
				if err := tx.RemoveItem(ctx, line.ItemID); err != nil {
					return err
				}
				deleted = append(deleted, entity.ChangedItem{
					ProductID:    line.ProductID,
					ProductTitle: line.ProductTitle,
					Quantity:     line.Quantity,
				})
			case line.Quantity > line.Inventory:
				if err := tx.SetItemQuantity(ctx, line.ItemID, line.Inventory); err != nil {
					return err
				}
				changed = append(changed, entity.ChangedItem{
					ProductID:    line.ProductID,
					ProductTitle: line.ProductTitle,
					Quantity:     line.Quantity,
				})
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error refreshing cart %s", cartID)
		return nil, err
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	return &entity.RefreshedCart{
		Cart:                 cart,
		DeletedItems:         deleted,
		QuantityChangedItems: changed,
	}, nil
}
