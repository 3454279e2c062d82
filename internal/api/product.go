package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GetProducts lists the catalog --> GET /products
func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.catalog.GetProducts(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, products)
}

// GetProduct returns one product --> GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, product)
}

// GetProductStock returns live inventory --> GET /products/:id/stock
func (h *ProductHandler) GetProductStock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	stock, err := h.catalog.GetProductStock(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]int{"stock": stock})
}

// CreateProduct adds a catalog entry --> POST /products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalog.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, created)
}

// UpdateProduct replaces a catalog entry --> PUT /products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	product.ID = id
	updated, err := h.catalog.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, updated)
}

// DeleteProduct removes a product not referenced by orders --> DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}

// GetProductImages lists a product's gallery --> GET /products/:id/images
func (h *ProductHandler) GetProductImages(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	images, err := h.catalog.GetProductImages(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, images)
}

// AddProductImage attaches an image path --> POST /products/:id/images
func (h *ProductHandler) AddProductImage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	payload := struct {
		Image string `json:"image"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalog.AddProductImage(c.Request().Context(), id, payload.Image)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(201, created)
}

// DeleteProductImage drops an image --> DELETE /products/:id/images/:imageId
func (h *ProductHandler) DeleteProductImage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid image ID"})
	}
	if err := h.catalog.DeleteProductImage(c.Request().Context(), id, imageID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(204)
}
