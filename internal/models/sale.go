package models

import "time"

// Venta: revenue record derived from a completed appointment. One per
// appointment, removed again if the completion is reversed.
type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex" json:"cita_id"`
	EmployeeID    uint `gorm:"index" json:"empleado_id"`
	ServiceID     uint `json:"servicio_id"`

	Date   time.Time `gorm:"type:date;index" json:"fecha"`
	Amount float64   `json:"monto"`

	CreatedAt time.Time `json:"creado_en"`
}
