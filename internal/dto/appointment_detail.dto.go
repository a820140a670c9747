package dto

import "time"

// AppointmentDetail is the read-side projection used by listings,
// notifications and reports: the appointment row joined with the
// denormalized service and employee names. Distinct from the write-side
// entity on purpose.
type AppointmentDetail struct {
	ID uint `json:"id"`

	ClientName  string `json:"cliente_nombre"`
	ClientEmail string `json:"cliente_email"`
	ClientPhone string `json:"cliente_telefono"`

	ServiceID    uint    `json:"servicio_id"`
	ServiceName  string  `json:"servicio_nombre"`
	ServicePrice float64 `json:"servicio_precio"`

	EmployeeID   uint   `json:"empleado_id"`
	EmployeeName string `json:"empleado_nombre"`

	Date     time.Time `json:"fecha"`
	TimeSlot string    `json:"hora"`

	Status             string `json:"estado"`
	CancellationReason string `json:"motivo_cancelacion,omitempty"`

	ConfirmationToken string `json:"-"`

	ConfirmationEmailSent bool `json:"email_confirmacion_enviado"`
	ReminderSent          bool `json:"recordatorio_enviado"`
	ReceiptEmailSent      bool `json:"email_recibo_enviado"`

	IsPast bool `json:"es_pasada"`

	CreatedAt time.Time `json:"created_at"`
}
