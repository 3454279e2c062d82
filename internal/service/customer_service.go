package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/notification"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

type JwtCustomClaims struct {
	UserID     int    `json:"user_id"`
	CustomerID int    `json:"customer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// CustomerService owns user registration and login. A Customer row is
// created explicitly here, in the same workflow as the user, instead of
// behind a persistence hook.
type CustomerService struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	dispatcher   notification.Dispatcher
	rdb          *redis.Client
}

func NewCustomerService(userRepo repository.UserRepository, customerRepo repository.CustomerRepository, dispatcher notification.Dispatcher, rdb *redis.Client) *CustomerService {
	return &CustomerService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		dispatcher:   dispatcher,
		rdb:          rdb,
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	return []byte(secret)
}

// Register creates the user account, its customer profile, and sends the
// welcome email in one explicit sequence.
func (s *CustomerService) Register(ctx context.Context, user *entity.User) (*entity.Customer, error) {
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	createdUser, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	customer, err := s.customerRepo.CreateCustomer(ctx, &entity.Customer{UserID: createdUser.ID})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating customer for user %d", createdUser.ID)
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Notify(ctx, notification.TemplateWelcome, createdUser.Email, map[string]interface{}{
			"name": createdUser.Username,
		})
	}

	return customer, nil
}

// Login verifies credentials and issues a signed token; the session is
// cached in redis for 24 hours.
func (s *CustomerService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetUserByEmailAndPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrNotFound)
		}
		return "", err
	}

	customer, err := s.customerRepo.GetCustomerByUserID(ctx, user.ID)
	if err != nil {
		return "", err
	}

	claims := &JwtCustomClaims{
		UserID:     user.ID,
		CustomerID: customer.ID,
		Email:      user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := tkn.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, email, t, time.Hour*24).Err(); err != nil {
			return "", err
		}
	}

	return t, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no customer with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomerByUserID(ctx context.Context, userID int) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no customer for the given user was found", ErrNotFound)
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return s.customerRepo.GetCustomers(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if _, err := s.customerRepo.GetCustomerByID(ctx, customer.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no customer with the given ID was found", ErrNotFound)
		}
		return nil, err
	}
	return s.customerRepo.UpdateCustomer(ctx, customer)
}
