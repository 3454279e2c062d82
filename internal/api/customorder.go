package api

import (
	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type CustomOrderHandler struct {
	customOrderService *service.CustomOrderService
}

func NewCustomOrderHandler(customOrderService *service.CustomOrderService) *CustomOrderHandler {
	return &CustomOrderHandler{customOrderService: customOrderService}
}

// CreateCustomOrder files a made-to-order request --> POST /custom-orders
func (h *CustomOrderHandler) CreateCustomOrder(c echo.Context) error {
	customerID, ok := customerFromToken(c)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	order := entity.CustomOrder{}
	if err := c.Bind(&order); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	order.CustomerID = customerID

	created, err := h.customOrderService.CreateCustomOrder(c.Request().Context(), &order)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, created)
}

// GetCustomOrders lists the caller's custom orders --> GET /custom-orders
func (h *CustomOrderHandler) GetCustomOrders(c echo.Context) error {
	customerID, ok := customerFromToken(c)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	orders, err := h.customOrderService.GetCustomOrdersForCustomer(c.Request().Context(), customerID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, orders)
}
