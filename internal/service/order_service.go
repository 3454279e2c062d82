package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/notification"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// OrderService converts carts into orders. The whole placement runs in
// one store transaction: order row, inventory decrements, order items and
// cart deletion commit together or not at all.
type OrderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	dispatcher   notification.Dispatcher
	rdb          *redis.Client
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, customerRepo repository.CustomerRepository, userRepo repository.UserRepository, dispatcher notification.Dispatcher, rdb *redis.Client) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		rdb:          rdb,
	}
}

// PlaceOrder turns the cart with cartID into a persisted order owned by
// customerID. Items whose product vanished or has no inventory left are
// skipped; remaining items are fulfilled up to available inventory, with
// the unit price captured at this instant. The cart is deleted on success.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, customerID int, idempotencyKey string) (*entity.Order, error) {
	ok, err := s.validateIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		logger.Error().Err(err).Msg("Error validating idempotency key")
		return nil, err
	}
	if !ok {
		return nil, ErrDuplicateKey
	}

	// Preconditions, checked before any mutation
	if _, err := s.cartRepo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no cart with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	items, err := s.cartRepo.GetCartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var order *entity.Order
	var touchedProducts []int

	err = s.orderRepo.WithTx(ctx, func(tx repository.OrderTx) error {
		created, err := tx.CreateOrder(ctx, customerID)
		if err != nil {
			return err
		}

		cartItems, err := tx.CartItems(ctx, cartID)
		if err != nil {
			return err
		}

		var orderItems []entity.OrderItem
		for _, item := range cartItems {
			product, granted, err := tx.Reserve(ctx, item.ProductID, item.Quantity)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// product was deleted since it went into the cart
					continue
				}
				return err
			}
			if granted == 0 {
				continue
			}

			orderItems = append(orderItems, entity.OrderItem{
				OrderID:      created.ID,
				ProductID:    product.ID,
				ProductTitle: product.Title,
				Quantity:     granted,
				UnitPrice:    product.UnitPrice,
			})
			touchedProducts = append(touchedProducts, product.ID)
		}

		if len(orderItems) == 0 {
			// rolls back the order row created above
			return ErrEmptyCart
		}

		if err := tx.InsertOrderItems(ctx, created.ID, orderItems); err != nil {
			return err
		}
		if err := tx.DeleteCart(ctx, cartID); err != nil {
			return err
		}

		created.Items = orderItems
		order = created
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmptyCart) {
			logger.Error().Err(err).Msgf("Error placing order for cart %s", cartID)
		}
		return nil, err
	}

	s.invalidateProductCache(ctx, touchedProducts)
	s.notifyOrderPlaced(ctx, order)

	return order, nil
}

// GetOrder returns a single order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no order with the given ID was found", ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}
	return order, nil
}

// GetOrdersForCustomer lists a customer's orders.
func (s *OrderService) GetOrdersForCustomer(ctx context.Context, customerID int) ([]*entity.Order, error) {
	orders, err := s.orderRepo.GetOrdersByCustomer(ctx, customerID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting orders for customer %d", customerID)
		return nil, err
	}
	return orders, nil
}

// GetOrders lists every order (staff view).
func (s *OrderService) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders")
		return nil, err
	}
	return orders, nil
}

// UpdatePaymentStatus is the only mutation an existing order accepts.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int, status string) (*entity.Order, error) {
	switch status {
	case entity.PaymentStatusPending, entity.PaymentStatusComplete, entity.PaymentStatusFailed:
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no order with the given ID was found", ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error updating payment status for order %d", id)
		return nil, err
	}

	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *OrderService) validateIdempotencyKey(ctx context.Context, key string) (bool, error) {
	if key == "" || s.rdb == nil {
		return true, nil
	}

	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	val, err := s.rdb.Get(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	if val != "" {
		return false, nil
	}

	err = s.rdb.Set(ctx, redisKey, "exists", 24*time.Hour).Err()
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *OrderService) invalidateProductCache(ctx context.Context, productIDs []int) {
	if s.rdb == nil {
		return
	}
	for _, id := range productIDs {
		key := fmt.Sprintf("product:%d", id)
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error invalidating cache for product %d", id)
		}
	}
}

func (s *OrderService) notifyOrderPlaced(ctx context.Context, order *entity.Order) {
	if s.dispatcher == nil {
		return
	}

	recipient := s.lookupCustomerEmail(ctx, order.CustomerID)
	s.dispatcher.Notify(ctx, notification.TemplateOrderSuccess, recipient, map[string]interface{}{
		"order_id": order.ID,
	})
}

func (s *OrderService) lookupCustomerEmail(ctx context.Context, customerID int) string {
	customer, err := s.customerRepo.GetCustomerByID(ctx, customerID)
	if err != nil {
		logger.Warn().Err(err).Msgf("Could not resolve customer %d for notification", customerID)
		return ""
	}
	user, err := s.userRepo.GetUserByID(ctx, customer.UserID)
	if err != nil {
		logger.Warn().Err(err).Msgf("Could not resolve user %d for notification", customer.UserID)
		return ""
	}
	return user.Email
}
