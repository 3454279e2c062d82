package api

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// customerFromToken pulls the acting customer out of the JWT the
// middleware verified.
func customerFromToken(c echo.Context) (int, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, false
	}
	claims, ok := token.Claims.(*service.JwtCustomClaims)
	if !ok {
		return 0, false
	}
	return claims.CustomerID, true
}

// PlaceOrder converts a cart into an order --> POST /orders
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	customerID, ok := customerFromToken(c)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	payload := struct {
		CartID string `json:"cart_id"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if payload.CartID == "" {
		return c.JSON(400, map[string]string{"error": "cart_id is required"})
	}

	idempotencyKey := c.Request().Header.Get("Idempotent-Key")

	order, err := h.orderService.PlaceOrder(c.Request().Context(), payload.CartID, customerID, idempotencyKey)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, order)
}

// GetOrders lists the caller's orders --> GET /orders
func (h *OrderHandler) GetOrders(c echo.Context) error {
	customerID, ok := customerFromToken(c)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	orders, err := h.orderService.GetOrdersForCustomer(c.Request().Context(), customerID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, orders)
}

// GetOrder --> GET /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid order ID"})
	}
	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, order)
}

// UpdatePaymentStatus --> PATCH /orders/:id
func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid order ID"})
	}
	payload := struct {
		PaymentStatus string `json:"payment_status"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	order, err := h.orderService.UpdatePaymentStatus(c.Request().Context(), id, payload.PaymentStatus)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, order)
}
