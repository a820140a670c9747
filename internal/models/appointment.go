package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName  string `gorm:"size:100;not null" json:"cliente_nombre"`
	ClientEmail string `gorm:"size:100" json:"cliente_email"`
	ClientPhone string `gorm:"size:30" json:"cliente_telefono"`

	// Associations exist for the schema only; responses carry the flat
	// ids, and read paths needing names go through dto.AppointmentDetail.
	ServiceID uint    `json:"servicio_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	EmployeeID uint     `json:"empleado_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date     time.Time `gorm:"type:date;index" json:"fecha"`
	TimeSlot string    `gorm:"size:8;not null" json:"hora"`

	Status             string `gorm:"size:20;default:'pendiente'" json:"estado"`
	CancellationReason string `gorm:"size:255" json:"motivo_cancelacion"`

	ConfirmationToken string `gorm:"size:64;uniqueIndex" json:"-"`

	ConfirmationEmailSent bool `gorm:"default:false" json:"email_confirmacion_enviado"`
	ReminderSent          bool `gorm:"default:false" json:"recordatorio_enviado"`
	ReceiptEmailSent      bool `gorm:"default:false" json:"email_recibo_enviado"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
