package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Register creates the user account and its customer profile --> POST /users
func (h *CustomerHandler) Register(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	customer, err := h.customerService.Register(c.Request().Context(), &user)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, customer)
}

// Login issues a JWT --> POST /users/login
func (h *CustomerHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.customerService.Login(c.Request().Context(), login.Email, login.Password)
	if err != nil {
		return c.JSON(401, map[string]string{"error": "invalid credentials"})
	}

	return c.JSON(200, map[string]string{"token": token})
}

// GetCustomers --> GET /customers
func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	customers, err := h.customerService.GetCustomers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, customers)
}

// GetCustomer --> GET /customers/:id
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid customer ID"})
	}
	customer, err := h.customerService.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, customer)
}

// Me returns or updates the caller's own profile --> GET|PUT /customers/me
func (h *CustomerHandler) Me(c echo.Context) error {
	customerID, ok := customerFromToken(c)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	if c.Request().Method == "PUT" {
		customer := entity.Customer{}
		if err := c.Bind(&customer); err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid request payload"})
		}
		customer.ID = customerID
		updated, err := h.customerService.UpdateCustomer(c.Request().Context(), &customer)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(200, updated)
	}

	customer, err := h.customerService.GetCustomer(c.Request().Context(), customerID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, customer)
}
