package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/httpresp"
	usecase "github.com/highburybarber/booking-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create     *usecase.CreateAppointment
	confirm    *usecase.ConfirmAppointment
	cancel     *usecase.CancelAppointment
	complete   *usecase.CompleteAppointment
	reactivate *usecase.ReactivateAppointment
	list       *usecase.ListAppointments
}

func NewAppointmentHandler(
	create *usecase.CreateAppointment,
	confirm *usecase.ConfirmAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	reactivate *usecase.ReactivateAppointment,
	list *usecase.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		confirm:    confirm,
		cancel:     cancel,
		complete:   complete,
		reactivate: reactivate,
		list:       list,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientName  string `json:"cliente_nombre" binding:"required"`
	ClientEmail string `json:"cliente_email"`
	ClientPhone string `json:"cliente_telefono"`
	ServiceID   uint   `json:"servicio_id" binding:"required"`
	EmployeeID  uint   `json:"empleado_id"`
	Date        string `json:"fecha" binding:"required"`
	TimeSlot    string `json:"hora" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"motivo"`
}

// --------- Public ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		EmployeeID:  req.EmployeeID,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Cita agendada exitosamente",
		"cita":    ap,
	})
}

// --------- Admin ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	details, err := h.list.Execute(c.Request.Context(), c.Query("estado"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, details)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.list.One(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, detail)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.reactivate.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}
