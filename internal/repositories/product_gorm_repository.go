package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalog/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
//
// The db handle may be nil: startup treats an unreachable database as
// non-fatal, so every method guards and reports ErrStoreUnavailable instead
// of dereferencing a dead connection.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	products := make([]models.Product, 0)
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the database assigns the ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces name, price and availability of an existing product. The
// condition is spelled out because a struct primary key of 0 would be dropped
// from the WHERE clause; the map form writes zero values too, and unlike Save
// it never falls back to an insert when the row is missing.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":         product.Name,
		"price":        product.Price,
		"availability": product.Availability,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Updates does not return ErrRecordNotFound; the affected-row
		// count is the not-found signal.
		return ErrProductNotFound
	}
	return nil
}

// ToggleAvailability flips the availability flag of an existing product and
// returns the updated row. Read and write are two statements with no
// transaction; concurrent writers on the same id race and the store decides.
func (r *GORMProductRepository) ToggleAvailability(id uint) (*models.Product, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	res := r.db.Model(&product).Update("availability", !product.Availability)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to toggle availability of product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Delete removes a product row for good; there is no soft delete.
func (r *GORMProductRepository) Delete(id uint) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
