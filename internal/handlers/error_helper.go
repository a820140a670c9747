package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/highburybarber/booking-api/internal/httperr"
)

// Business error messages shown to API consumers, keyed by code.
var businessMessages = map[string]string{
	"slot_conflict":         "El horario seleccionado ya no está disponible",
	"slot_in_past":          "No se pueden agendar citas en el pasado",
	"invalid_date":          "Fecha inválida, use el formato YYYY-MM-DD",
	"invalid_slot":          "Hora inválida, use el formato HH:MM:SS",
	"invalid_email":         "Email inválido",
	"invalid_transition":    "La cita no admite esta operación en su estado actual",
	"invalid_range":         "Rango de fechas inválido",
	"invalid_status":        "Estado inválido",
	"missing_client_name":   "El nombre del cliente es obligatorio",
	"already_processed":     "La cita ya fue procesada",
	"service_not_found":     "Servicio no encontrado",
	"employee_not_found":    "Empleado no encontrado",
	"appointment_not_found": "Cita no encontrada",
	"token_not_found":       "Enlace inválido o vencido",
}

// writeError renders a business error with its mapped status, and anything
// else as an opaque 500.
func writeError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg := businessMessages[be.Code]
		if msg == "" {
			msg = be.Code
		}
		httperr.Write(c, be.Status(), be.Code, msg)
		return
	}

	httperr.Internal(c, "internal_error", "Error interno del servidor")
}
