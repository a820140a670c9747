package models

import "time"

// Horario. At most one active record per (employee, weekday); the unique
// index backing that lives in internal/db.
type WorkingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index:idx_working_hours_employee_weekday,unique" json:"empleado_id"`

	Weekday string `gorm:"size:10;index:idx_working_hours_employee_weekday,unique" json:"dia_semana"`

	StartTime string `gorm:"size:8" json:"hora_inicio"`
	EndTime   string `gorm:"size:8" json:"hora_fin"`
	Active    bool   `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
