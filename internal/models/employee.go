package models

import "time"

// Empleado. Deactivation is a soft flag so historical appointments keep a
// valid reference.
type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"nombre"`
	DocumentID string `gorm:"size:30;uniqueIndex" json:"cedula"`
	PhotoURL   string `gorm:"size:255" json:"foto"`
	Active     bool   `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
