package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// ProductHandler handles HTTP requests for products. Each handler performs
// exactly one service call and maps its outcome to an HTTP status; input
// validation has already happened in the route's middleware chain. Request
// bodies are decoded from the raw bytes that chain checked, so a body that
// passed validation always decodes regardless of the Content-Type header.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// CreateProductRequest is the body accepted by the create endpoint. It has no
// availability field: new products always start available.
type CreateProductRequest struct {
	Name  string  `json:"name" example:"Monitor"`
	Price float64 `json:"price" example:"300"`
}

// UpdateProductRequest is the body accepted by the update endpoint. All three
// fields are required; the update is a full replace.
type UpdateProductRequest struct {
	Name         string  `json:"name" example:"Monitor"`
	Price        float64 `json:"price" example:"300"`
	Availability bool    `json:"availability" example:"true"`
}

// MessageResponse carries delete confirmations and error descriptions.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRoutes registers the product routes with the Fiber app. Every route
// binds its declared validators, then the aggregation gate, then the handler,
// in that order.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleGetProducts)
	products.Get("/:id", middleware.ValidateProductID, middleware.CheckValidation, h.HandleGetProductByID)
	products.Post("/", middleware.ValidateProductBody(middleware.NameRule(), middleware.PriceRule()), middleware.CheckValidation, h.HandleCreateProduct)
	products.Put("/:id", middleware.ValidateProductID, middleware.ValidateProductBody(middleware.NameRule(), middleware.PriceRule(), middleware.AvailabilityRule()), middleware.CheckValidation, h.HandleUpdateProduct)
	products.Patch("/:id", middleware.ValidateProductID, middleware.CheckValidation, h.HandleToggleAvailability)
	products.Delete("/:id", middleware.ValidateProductID, middleware.CheckValidation, h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
//
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} handlers.MessageResponse
// @Router /api/products [get]
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
//
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} handlers.MessageResponse
// @Failure 500 {object} handlers.MessageResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Locals(middleware.ProductIDKey).(uint)
	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: fmt.Sprintf("Product with ID %s not found", c.Params("id")),
			})
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product from a name and a price. The
// store assigns the ID and the product starts available.
//
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body handlers.CreateProductRequest true "Product to create"
// @Success 201 {object} models.Product
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} handlers.MessageResponse
// @Router /api/products [post]
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	product := models.Product{
		Name:         req.Name,
		Price:        req.Price,
		Availability: true,
	}
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces name, price and availability of an existing
// product.
//
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body handlers.UpdateProductRequest true "New product state"
// @Success 200 {object} models.Product
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} handlers.MessageResponse
// @Failure 500 {object} handlers.MessageResponse
// @Router /api/products/{id} [put]
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Locals(middleware.ProductIDKey).(uint)
	var req UpdateProductRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	product := models.Product{
		ID:           id,
		Name:         req.Name,
		Price:        req.Price,
		Availability: req.Availability,
	}
	if err := h.service.UpdateProduct(&product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: fmt.Sprintf("Product with ID %s not found", c.Params("id")),
			})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Could not update product",
		})
	}
	return c.JSON(product)
}

// HandleToggleAvailability flips the availability flag of an existing
// product. Calling it twice restores the original state.
//
// @Summary Toggle product availability
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} handlers.MessageResponse
// @Failure 500 {object} handlers.MessageResponse
// @Router /api/products/{id} [patch]
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id := c.Locals(middleware.ProductIDKey).(uint)
	product, err := h.service.ToggleAvailability(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: fmt.Sprintf("Product with ID %s not found", c.Params("id")),
			})
		}
		log.Printf("Error toggling availability of product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Could not update product",
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product permanently.
//
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} handlers.MessageResponse
// @Failure 500 {object} handlers.MessageResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Locals(middleware.ProductIDKey).(uint)
	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: fmt.Sprintf("Product with ID %s not found", c.Params("id")),
			})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Could not delete product",
		})
	}
	return c.JSON(MessageResponse{
		Message: fmt.Sprintf("Product with ID %d deleted successfully", id),
	})
}
