package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/dto"
	"github.com/highburybarber/booking-api/internal/metrics"
)

// Notifier formats and delivers all client-facing messages. Every delivery
// is best-effort: failures are logged and counted, never propagated to the
// caller's state transition. The boolean results only drive the
// notification-sent flags.
type Notifier struct {
	mailer     *SMTPMailer
	whatsapp   Sender
	baseURL    string
	shopNumber string
	log        zerolog.Logger
}

func NewNotifier(
	mailer *SMTPMailer,
	whatsapp Sender,
	baseURL string,
	shopNumber string,
	log zerolog.Logger,
) *Notifier {
	return &Notifier{
		mailer:     mailer,
		whatsapp:   whatsapp,
		baseURL:    baseURL,
		shopNumber: shopNumber,
		log:        log,
	}
}

func (n *Notifier) sendMail(d *dto.AppointmentDetail, subject, body string) bool {
	if n.mailer == nil || !n.mailer.IsReady() {
		n.log.Debug().Uint("appointment_id", d.ID).Msg("email not configured, skipping")
		return false
	}
	if err := n.mailer.SendHTML(d.ClientEmail, subject, body); err != nil {
		metrics.NotificationFailures.WithLabelValues("email").Inc()
		n.log.Warn().Err(err).Uint("appointment_id", d.ID).Msg("email delivery failed")
		return false
	}
	return true
}

func (n *Notifier) sendWhatsApp(ctx context.Context, d *dto.AppointmentDetail, recipient, msg string) {
	if n.whatsapp == nil || !n.whatsapp.IsReady() {
		n.log.Debug().Uint("appointment_id", d.ID).Msg("whatsapp not ready, skipping")
		return
	}
	if err := n.whatsapp.Send(ctx, recipient, msg); err != nil {
		metrics.NotificationFailures.WithLabelValues("whatsapp").Inc()
		n.log.Warn().Err(err).Uint("appointment_id", d.ID).Msg("whatsapp delivery failed")
	}
}

// BookingConfirmed notifies the client on both channels and alerts the
// shop with confirm/cancel links. Returns whether the email went out, so
// the caller can set the confirmation-sent flag.
func (n *Notifier) BookingConfirmed(ctx context.Context, d *dto.AppointmentDetail) bool {
	date := calendar.DateLabel(d.Date)
	hour := calendar.SlotLabel(d.TimeSlot)

	emailOK := n.sendMail(d,
		"Confirmación de tu Cita - Highbury Barber",
		emailBody("Confirmación de Cita",
			fmt.Sprintf("¡Hola %s!", d.ClientName),
			"Tu cita ha sido agendada exitosamente.",
			[]string{
				"Fecha: " + date,
				"Hora: " + hour,
				"Servicio: " + d.ServiceName,
				"Barbero: " + d.EmployeeName,
				fmt.Sprintf("Precio: $%.0f", d.ServicePrice),
			},
			"Te enviaremos un recordatorio por WhatsApp 3 horas antes de tu cita.",
		))

	n.sendWhatsApp(ctx, d, d.ClientPhone, fmt.Sprintf(
		"✅ *Cita Agendada - Highbury Barber*\n\n"+
			"Hola *%s*!\n\n"+
			"Fecha: %s\nHora: %s\nServicio: %s\nBarbero: %s\nPrecio: $%.0f\n\n"+
			"Te enviaremos un recordatorio 3 horas antes de tu cita.",
		d.ClientName, date, hour, d.ServiceName, d.EmployeeName, d.ServicePrice))

	if n.shopNumber != "" {
		n.sendWhatsApp(ctx, d, n.shopNumber, fmt.Sprintf(
			"📝 *Nueva Cita Agendada*\n\n"+
				"Cliente: *%s*\nTeléfono: %s\nFecha: %s\nHora: %s\nServicio: %s\nBarbero: %s\n\n"+
				"✅ Confirmar: %s/api/whatsapp/confirmar/%s\n"+
				"❌ Cancelar: %s/api/whatsapp/cancelar/%s",
			d.ClientName, d.ClientPhone, date, hour, d.ServiceName, d.EmployeeName,
			n.baseURL, d.ConfirmationToken,
			n.baseURL, d.ConfirmationToken))
	}

	return emailOK
}

// BookingCancelled notifies the client on both channels.
func (n *Notifier) BookingCancelled(ctx context.Context, d *dto.AppointmentDetail, reason string) {
	date := calendar.DateLabel(d.Date)
	hour := calendar.SlotLabel(d.TimeSlot)

	n.sendMail(d,
		"Cita Cancelada - Highbury Barber",
		emailBody("Cita Cancelada",
			fmt.Sprintf("Hola %s,", d.ClientName),
			"Lamentamos informarte que tu cita ha sido cancelada.",
			[]string{
				"Fecha: " + date,
				"Hora: " + hour,
				"Servicio: " + d.ServiceName,
				"Motivo: " + reason,
			},
			"Podés agendar una nueva cita cuando lo desees.",
		))

	n.sendWhatsApp(ctx, d, d.ClientPhone, fmt.Sprintf(
		"❌ *Cita Cancelada - Highbury Barber*\n\n"+
			"Hola *%s*,\n\n"+
			"Fecha: %s\nHora: %s\nServicio: %s\n\nMotivo: %s\n\n"+
			"Podés agendar una nueva cita cuando lo desees.",
		d.ClientName, date, hour, d.ServiceName, reason))
}

// Receipt sends the completion receipt email. Returns whether it went out.
func (n *Notifier) Receipt(_ context.Context, d *dto.AppointmentDetail) bool {
	return n.sendMail(d,
		"Recibo de tu Visita - Highbury Barber",
		emailBody("Recibo",
			fmt.Sprintf("¡Gracias por tu visita, %s!", d.ClientName),
			"Este es el recibo de tu servicio.",
			[]string{
				"Fecha: " + calendar.DateLabel(d.Date),
				"Servicio: " + d.ServiceName,
				"Barbero: " + d.EmployeeName,
				fmt.Sprintf("Total: $%.0f", d.ServicePrice),
			},
			"¡Te esperamos pronto!",
		))
}

// Reminder sends the pre-appointment WhatsApp reminder. The returned error
// lets the sweeper log per-appointment outcomes; the reminder flag is set
// by the caller regardless.
func (n *Notifier) Reminder(ctx context.Context, d *dto.AppointmentDetail) error {
	if n.whatsapp == nil || !n.whatsapp.IsReady() {
		return fmt.Errorf("whatsapp not ready")
	}

	msg := fmt.Sprintf(
		"🔔 *Recordatorio de Cita - Highbury Barber*\n\n"+
			"Hola *%s*!\n\n"+
			"Te recordamos que tienes una cita programada:\n\n"+
			"Fecha: %s\nHora: %s\nServicio: %s\nBarbero: %s\n\n"+
			"¡Te esperamos!",
		d.ClientName,
		calendar.DateLabel(d.Date),
		calendar.SlotLabel(d.TimeSlot),
		d.ServiceName,
		d.EmployeeName)

	if err := n.whatsapp.Send(ctx, d.ClientPhone, msg); err != nil {
		metrics.NotificationFailures.WithLabelValues("whatsapp").Inc()
		return err
	}
	return nil
}

func emailBody(title, greeting, intro string, rows []string, outro string) string {
	var items string
	for _, r := range rows {
		items += "<p><strong>" + r + "</strong></p>"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #1A1A1A; color: white; padding: 30px 20px; text-align: center; border-bottom: 3px solid #D4AF37;">
      <h1 style="margin: 0; letter-spacing: 2px;">HIGHBURY BARBER</h1>
      <p style="color: #D4AF37; margin: 10px 0 0;">%s</p>
    </div>
    <div style="background-color: #f9f9f9; padding: 30px 20px;">
      <h2 style="margin-top: 0;">%s</h2>
      <p>%s</p>
      <div style="background-color: white; padding: 20px; margin: 20px 0; border-left: 4px solid #D4AF37;">%s</div>
      <p>%s</p>
    </div>
    <div style="text-align: center; padding: 20px; font-size: 12px; color: #777;">
      <p>Gracias por preferirnos</p>
      <p><strong>Highbury Barber</strong></p>
    </div>
  </div>
</body>
</html>`, title, greeting, intro, items, outro)
}
