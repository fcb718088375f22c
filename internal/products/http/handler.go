package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"product-store/internal/products"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, in products.CreateProduct) (products.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (products.Product, error)
	QueryProducts(ctx context.Context, r products.PriceRange) ([]products.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch products.ProductPatch) (products.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service ProductService
}

func NewHandler(svc ProductService) *Handler {
	return &Handler{service: svc}
}

type createProductRequest struct {
	ID       *uuid.UUID `json:"id" example:"a47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Name     string     `json:"name" binding:"required" example:"Widget"`
	Quantity *int64     `json:"quantity" binding:"required,gte=0" example:"10"`
	Price    *float64   `json:"price" binding:"required,gte=0" example:"9.99"`
	Status   *bool      `json:"status" example:"true"`
}

type updateProductRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1" example:"Widget"`
	Quantity  *int64     `json:"quantity" binding:"omitempty,gte=0" example:"5"`
	Price     *float64   `json:"price" binding:"omitempty,gte=0" example:"12.50"`
	Status    *bool      `json:"status" example:"false"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error" example:"product not found"`
}

// CreateProduct godoc
// @Summary      Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product data"
// @Success      201   {object}  products.Product
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), products.CreateProduct{
		ID:       req.ID,
		Name:     req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  products.Product
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// QueryProducts godoc
// @Summary      List products filtered by price range
// @Description  Both bounds are exclusive: price_min < price < price_max.
// @Tags         products
// @Produce      json
// @Param        price_min  query     number  false  "Lower price bound (exclusive)"
// @Param        price_max  query     number  false  "Upper price bound (exclusive)"
// @Success      200  {array}   products.Product
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *Handler) QueryProducts(c *gin.Context) {
	priceMin, err := parseQueryFloat(c.Query("price_min"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid price_min"})
		return
	}
	priceMax, err := parseQueryFloat(c.Query("price_max"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid price_max"})
		return
	}

	items, err := h.service.QueryProducts(c.Request.Context(), products.PriceRange{
		Min: priceMin,
		Max: priceMax,
	})
	if err != nil {
		respondError(c, err, "failed to get products")
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateProduct godoc
// @Summary      Partially update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  products.Product
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /products/{id} [patch]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, products.ProductPatch{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    req.Status,
		UpdatedAt: req.UpdatedAt,
	})
	if err != nil {
		respondError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary      Delete a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps domain errors to their status/message pair and hides
// everything else behind a generic 500.
func respondError(c *gin.Context, err error, fallback string) {
	var domainErr *products.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.Status, errorResponse{Error: domainErr.Message})
		return
	}

	switch {
	case errors.Is(err, products.ErrInvalidName),
		errors.Is(err, products.ErrInvalidQuantity),
		errors.Is(err, products.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

func parseQueryFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
