package services

import (
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/rabbitmq"
)

// ProductService handles business logic related to products.
//
// The service is deliberately thin: every method maps to exactly one
// repository call. Input validation happens in the route middleware before a
// handler ever reaches this layer. Successful mutations additionally publish
// a product event when a message broker is configured.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. mqClient may be nil when
// messaging is disabled; events are then skipped.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product; the store assigns its ID.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent("product.created", productPayload(product))
	return nil
}

// UpdateProduct replaces name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publishEvent("product.updated", productPayload(product))
	return nil
}

// ToggleAvailability flips the availability flag of an existing product and
// returns the updated product.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	product, err := s.repo.ToggleAvailability(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", productPayload(product))
	return product, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", map[string]interface{}{"product_id": id})
	return nil
}

// publishEvent sends a product event to the broker. Publishing is
// best-effort: a failure is logged and never surfaced to the API caller.
func (s *ProductService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishProductEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}

func productPayload(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"product_id":   p.ID,
		"name":         p.Name,
		"price":        p.Price,
		"availability": p.Availability,
	}
}
