package models

import "time"

// Día festivo: shop-wide closure, overrides everything.
type Holiday struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date        time.Time `gorm:"type:date;uniqueIndex" json:"fecha"`
	Description string    `gorm:"size:255" json:"descripcion"`

	CreatedAt time.Time `json:"created_at"`
}
