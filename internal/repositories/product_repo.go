package repositories

import (
	"errors"

	"catalog/internal/models"
)

var (
	// ErrProductNotFound is returned when no product row matches the requested ID.
	ErrProductNotFound = errors.New("product not found")

	// ErrStoreUnavailable is returned when the repository has no database
	// connection. The server keeps serving with an unreachable store at
	// startup; every persistence call then fails with this error.
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	ToggleAvailability(id uint) (*models.Product, error)
	Delete(id uint) error
}
