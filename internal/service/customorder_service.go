package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/notification"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

type CustomOrderService struct {
	customOrderRepo repository.CustomOrderRepository
	customerRepo    repository.CustomerRepository
	userRepo        repository.UserRepository
	dispatcher      notification.Dispatcher
}

func NewCustomOrderService(customOrderRepo repository.CustomOrderRepository, customerRepo repository.CustomerRepository, userRepo repository.UserRepository, dispatcher notification.Dispatcher) *CustomOrderService {
	return &CustomOrderService{
		customOrderRepo: customOrderRepo,
		customerRepo:    customerRepo,
		userRepo:        userRepo,
		dispatcher:      dispatcher,
	}
}

// CreateCustomOrder records a made-to-order request and tells the
// customer to wait for a quote.
func (s *CustomOrderService) CreateCustomOrder(ctx context.Context, order *entity.CustomOrder) (*entity.CustomOrder, error) {
	if order.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}

	customer, err := s.customerRepo.GetCustomerByID(ctx, order.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no customer with the given ID was found", ErrNotFound)
		}
		return nil, err
	}

	order.PlacedAt = time.Now().UTC()
	created, err := s.customOrderRepo.CreateCustomOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating custom order for customer %d", order.CustomerID)
		return nil, err
	}

	if s.dispatcher != nil {
		recipient := ""
		if user, err := s.userRepo.GetUserByID(ctx, customer.UserID); err == nil {
			recipient = user.Email
		}
		s.dispatcher.Notify(ctx, notification.TemplateCustomOrderWait, recipient, map[string]interface{}{
			"custom_order_id": created.ID,
			"product_name":    created.ProductName,
		})
	}

	return created, nil
}

func (s *CustomOrderService) GetCustomOrdersForCustomer(ctx context.Context, customerID int) ([]*entity.CustomOrder, error) {
	orders, err := s.customOrderRepo.GetCustomOrdersByCustomer(ctx, customerID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting custom orders for customer %d", customerID)
		return nil, err
	}
	return orders, nil
}
