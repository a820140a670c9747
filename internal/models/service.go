package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"nombre"`
	Description string  `gorm:"size:255" json:"descripcion"`
	Price       float64 `json:"precio"`
	DurationMin int     `json:"duracion_min"`
	Active      bool    `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
