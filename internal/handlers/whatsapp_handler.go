package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
	usecase "github.com/highburybarber/booking-api/internal/usecase/appointment"
)

// WhatsAppHandler serves the token link pages embedded in the shop alert
// messages. These render plain HTML because they are opened from a phone,
// not called by the frontend.
type WhatsAppHandler struct {
	confirm *usecase.ConfirmAppointment
	cancel  *usecase.CancelAppointment
}

func NewWhatsAppHandler(
	confirm *usecase.ConfirmAppointment,
	cancel *usecase.CancelAppointment,
) *WhatsAppHandler {
	return &WhatsAppHandler{confirm: confirm, cancel: cancel}
}

// Confirm handles the one-click confirmation link.
func (h *WhatsAppHandler) Confirm(c *gin.Context) {
	token := c.Param("token")

	ap, err := h.confirm.ExecuteByToken(c.Request.Context(), token)
	if err != nil {
		if httperr.IsBusiness(err, "already_processed") && ap != nil {
			renderPage(c, http.StatusOK, "Cita ya procesada",
				fmt.Sprintf("Esta cita ya se encuentra en estado <strong>%s</strong>.",
					html.EscapeString(ap.Status)))
			return
		}
		if httperr.IsBusiness(err, "token_not_found") {
			renderPage(c, http.StatusNotFound, "Enlace inválido",
				"El enlace no es válido o ya venció.")
			return
		}
		renderPage(c, http.StatusInternalServerError, "Error",
			"No pudimos procesar la solicitud. Intentá nuevamente.")
		return
	}

	renderPage(c, http.StatusOK, "✅ Cita Confirmada", appointmentSummary(ap))
}

// CancelForm shows the reason form behind the cancellation link.
func (h *WhatsAppHandler) CancelForm(c *gin.Context) {
	token := html.EscapeString(c.Param("token"))

	body := fmt.Sprintf(`
    <p>Indicá el motivo de la cancelación:</p>
    <form method="POST" action="/api/whatsapp/cancelar/%s">
      <textarea name="motivo" rows="3" style="width:100%%;" placeholder="Motivo (opcional)"></textarea>
      <br><br>
      <button type="submit" style="background:#c0392b;color:white;padding:10px 24px;border:none;border-radius:4px;">
        Cancelar Cita
      </button>
    </form>`, token)

	renderPage(c, http.StatusOK, "Cancelar Cita", body)
}

// CancelSubmit applies the cancellation posted from the form.
func (h *WhatsAppHandler) CancelSubmit(c *gin.Context) {
	token := c.Param("token")
	reason := c.PostForm("motivo")
	if reason == "" {
		reason = "Cancelada desde WhatsApp"
	}

	ap, err := h.cancel.ExecuteByToken(c.Request.Context(), token, reason)
	if err != nil {
		if httperr.IsBusiness(err, "already_processed") && ap != nil {
			renderPage(c, http.StatusOK, "Cita ya procesada",
				fmt.Sprintf("Esta cita ya se encuentra en estado <strong>%s</strong>.",
					html.EscapeString(ap.Status)))
			return
		}
		if httperr.IsBusiness(err, "token_not_found") {
			renderPage(c, http.StatusNotFound, "Enlace inválido",
				"El enlace no es válido o ya venció.")
			return
		}
		renderPage(c, http.StatusInternalServerError, "Error",
			"No pudimos procesar la solicitud. Intentá nuevamente.")
		return
	}

	renderPage(c, http.StatusOK, "❌ Cita Cancelada", appointmentSummary(ap))
}

func appointmentSummary(ap *models.Appointment) string {
	return fmt.Sprintf(
		"<p><strong>Cliente:</strong> %s</p><p><strong>Fecha:</strong> %s</p><p><strong>Hora:</strong> %s</p>",
		html.EscapeString(ap.ClientName),
		calendar.DateLabel(ap.Date),
		calendar.SlotLabel(ap.TimeSlot))
}

func renderPage(c *gin.Context, status int, title, body string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s - Highbury Barber</title>
</head>
<body style="font-family: Arial, sans-serif; background:#f4f4f4; margin:0; padding:20px;">
  <div style="max-width:480px; margin:40px auto; background:white; border-radius:8px; overflow:hidden; box-shadow:0 2px 8px rgba(0,0,0,.1);">
    <div style="background:#1A1A1A; color:#D4AF37; padding:24px; text-align:center;">
      <h1 style="margin:0; font-size:20px; letter-spacing:2px;">HIGHBURY BARBER</h1>
    </div>
    <div style="padding:24px;">
      <h2 style="margin-top:0;">%s</h2>
      %s
    </div>
  </div>
</body>
</html>`, title, title, body)

	c.Data(status, "text/html; charset=utf-8", []byte(page))
}
