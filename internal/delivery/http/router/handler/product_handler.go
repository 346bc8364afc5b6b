// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

type createProductRequest struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
	Price       int64       `json:"price"`
	Stock       int64       `json:"stock"`
	HasVariants bool        `json:"hasVariants"`
	Images      []string    `json:"images"`
}

type updateProductRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
	Price       *int64      `json:"price"`
	Stock       *int64      `json:"stock"`
	Images      []string    `json:"images"`
}

type addVariantRequest struct {
	SKU        string            `json:"sku"`
	Attributes entity.Attributes `json:"attributes" validate:"required"`
	Price      int64             `json:"price"`
	Stock      int64             `json:"stock"`
	Images     []string          `json:"images"`
}

type updateVariantRequest struct {
	Attributes entity.Attributes `json:"attributes"`
	Price      *int64            `json:"price"`
	Stock      *int64            `json:"stock"`
	Images     []string          `json:"images"`
}

// ListProducts returns the whole catalog, newest first.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// GetProduct returns one product with its variants.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的商品編號")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// CreateProduct creates a product. Admin only.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的商品資料")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryIDs: req.CategoryIDs,
		Price:       req.Price,
		Stock:       req.Stock,
		HasVariants: req.HasVariants,
		Images:      req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct updates a product's own fields. Admin only.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的商品編號")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的商品資料")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryIDs: req.CategoryIDs,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes a product and its variants. Admin only.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的商品編號")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// AddVariant attaches a variant to a product. Admin only.
func (h *ProductHandler) AddVariant(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的商品編號")
	}

	var req addVariantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的規格資料")
	}

	variant, err := h.uc.AddVariant(c.Request().Context(), productID, usecase.AddVariantInput{
		SKU:        req.SKU,
		Attributes: req.Attributes,
		Price:      req.Price,
		Stock:      req.Stock,
		Images:     req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, variant, "Variant added successfully")
}

// UpdateVariant updates a variant. Admin only.
func (h *ProductHandler) UpdateVariant(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的商品編號")
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的規格編號")
	}

	var req updateVariantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的規格資料")
	}

	variant, err := h.uc.UpdateVariant(c.Request().Context(), productID, variantID, usecase.UpdateVariantInput{
		Attributes: req.Attributes,
		Price:      req.Price,
		Stock:      req.Stock,
		Images:     req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, variant, "Variant updated successfully")
}

// DeleteVariant removes a variant. Admin only.
func (h *ProductHandler) DeleteVariant(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的商品編號")
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的規格編號")
	}

	if err := h.uc.DeleteVariant(c.Request().Context(), productID, variantID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Variant deleted successfully")
}
