package dto

import "time"

// SaleDetail is the sale row joined with the names the reports render.
type SaleDetail struct {
	ID            uint `json:"id"`
	AppointmentID uint `json:"cita_id"`

	Date     time.Time `json:"fecha"`
	TimeSlot string    `json:"hora"`
	Amount   float64   `json:"monto"`

	ClientName string `json:"cliente_nombre"`

	EmployeeID   uint   `json:"empleado_id"`
	EmployeeName string `json:"empleado_nombre"`

	ServiceID   uint   `json:"servicio_id"`
	ServiceName string `json:"servicio_nombre"`
}
