package models

// Product represents a catalog item managed by the API.
//
// The wire shape is exactly {id, name, price, availability}: no timestamps
// and no gorm.Model embed, because rows are hard-deleted and a DeletedAt
// column would turn every delete into a soft delete.
type Product struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null" validate:"required"`
	Price        float64 `json:"price" gorm:"not null" validate:"required,gt=0"`
	Availability bool    `json:"availability" gorm:"default:true"`
}
