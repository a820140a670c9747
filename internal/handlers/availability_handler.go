package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/httpresp"
	usecase "github.com/highburybarber/booking-api/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *usecase.GetAvailability
}

func NewAvailabilityHandler(availability *usecase.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Get resolves the free slots for a date: all barbers by default, one
// barber when empleado_id is present.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("fecha"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use el formato YYYY-MM-DD")
		return
	}

	if raw := c.Query("empleado_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "empleado_id inválido")
			return
		}

		result, err := h.availability.ForEmployeeByID(c.Request.Context(), uint(id), date)
		if err != nil {
			writeError(c, err)
			return
		}

		httpresp.OK(c, result)
		return
	}

	result, err := h.availability.ForAllEmployees(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, result)
}
