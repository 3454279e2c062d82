package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type WishListHandler struct {
	wishlistService *service.WishListService
}

func NewWishListHandler(wishlistService *service.WishListService) *WishListHandler {
	return &WishListHandler{wishlistService: wishlistService}
}

// CreateWishList --> POST /wishlists
func (h *WishListHandler) CreateWishList(c echo.Context) error {
	list, err := h.wishlistService.CreateWishList(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, list)
}

// GetWishList --> GET /wishlists/:id
func (h *WishListHandler) GetWishList(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid wishlist ID"})
	}
	list, err := h.wishlistService.GetWishList(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, list)
}

// DeleteWishList --> DELETE /wishlists/:id
func (h *WishListHandler) DeleteWishList(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid wishlist ID"})
	}
	if err := h.wishlistService.DeleteWishList(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}

// AddWishListItem --> POST /wishlists/:id/items
func (h *WishListHandler) AddWishListItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid wishlist ID"})
	}
	payload := struct {
		ProductID int `json:"product_id"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	item, err := h.wishlistService.AddItem(c.Request().Context(), id, payload.ProductID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, item)
}

// RemoveWishListItem --> DELETE /wishlists/:id/items/:itemId
func (h *WishListHandler) RemoveWishListItem(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid item ID"})
	}
	if err := h.wishlistService.RemoveItem(c.Request().Context(), itemID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}
