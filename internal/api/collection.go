package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type CollectionHandler struct {
	catalog *service.CatalogService
}

func NewCollectionHandler(catalog *service.CatalogService) *CollectionHandler {
	return &CollectionHandler{catalog: catalog}
}

// GetCollections --> GET /collections
func (h *CollectionHandler) GetCollections(c echo.Context) error {
	collections, err := h.catalog.GetCollections(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, collections)
}

// GetCollection --> GET /collections/:id
func (h *CollectionHandler) GetCollection(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid collection ID"})
	}
	collection, err := h.catalog.GetCollection(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, collection)
}

// CreateCollection --> POST /collections
func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	collection := entity.Collection{}
	if err := c.Bind(&collection); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalog.CreateCollection(c.Request().Context(), &collection)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, created)
}

// UpdateCollection --> PUT /collections/:id
func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid collection ID"})
	}
	collection := entity.Collection{}
	if err := c.Bind(&collection); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	collection.ID = id
	updated, err := h.catalog.UpdateCollection(c.Request().Context(), &collection)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, updated)
}

// DeleteCollection --> DELETE /collections/:id
func (h *CollectionHandler) DeleteCollection(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid collection ID"})
	}
	if err := h.catalog.DeleteCollection(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}
