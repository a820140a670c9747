package models

import "time"

// Bloqueo: inclusive date range during which an employee is fully
// unavailable, regardless of working hours.
type Blackout struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index" json:"empleado_id"`

	StartDate time.Time `gorm:"type:date" json:"fecha_inicio"`
	EndDate   time.Time `gorm:"type:date" json:"fecha_fin"`

	Reason      string `gorm:"size:100" json:"motivo"`
	Description string `gorm:"size:255" json:"descripcion"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
