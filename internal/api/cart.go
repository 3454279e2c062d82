package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CreateCart mints an empty cart --> POST /carts
func (h *CartHandler) CreateCart(c echo.Context) error {
	cart, err := h.cartService.CreateCart(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, cart)
}

// GetCart --> GET /carts/:id
func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartService.GetCart(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, cart)
}

// DeleteCart --> DELETE /carts/:id
func (h *CartHandler) DeleteCart(c echo.Context) error {
	if err := h.cartService.DeleteCart(c.Request().Context(), c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}

// RefreshCart reconciles the cart with live inventory and reports the
// diff --> GET /carts/:id/refresh
func (h *CartHandler) RefreshCart(c echo.Context) error {
	refreshed, err := h.cartService.RefreshCart(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, refreshed)
}

// AddCartItem --> POST /carts/:id/items
func (h *CartHandler) AddCartItem(c echo.Context) error {
	payload := struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	item, err := h.cartService.AddItem(c.Request().Context(), c.Param("id"), payload.ProductID, payload.Quantity)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, item)
}

// UpdateCartItem --> PATCH /carts/:id/items/:productId
func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	payload := struct {
		Quantity int `json:"quantity"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	item, err := h.cartService.UpdateItem(c.Request().Context(), c.Param("id"), productID, payload.Quantity)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, item)
}

// RemoveCartItem --> DELETE /carts/:id/items/:productId
func (h *CartHandler) RemoveCartItem(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	if err := h.cartService.RemoveItem(c.Request().Context(), c.Param("id"), productID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}
