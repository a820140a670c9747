package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/cache"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
	"github.com/highburybarber/booking-api/internal/notify"
)

const defaultCancelReason = "Cancelada por la barbería"

type CancelAppointment struct {
	repo     domain.Repository
	cache    *cache.AvailabilityCache
	notifier *notify.Notifier
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	notifier *notify.Notifier,
	auditor *audit.Dispatcher,
	log zerolog.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		cache:    c,
		notifier: notifier,
		audit:    auditor,
		log:      log,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	return uc.cancel(ctx, ap, reason, audit.ActorAdmin)
}

// ExecuteByToken is the link-click path: the client can only withdraw an
// appointment that is still pending.
func (uc *CancelAppointment) ExecuteByToken(
	ctx context.Context,
	token string,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("token_not_found")
		}
		return nil, err
	}

	if domain.Status(ap.Status) != domain.StatusPending {
		return ap, httperr.ErrBusiness("already_processed")
	}

	return uc.cancel(ctx, ap, reason, audit.ActorClient)
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	reason string,
	actor string,
) (*models.Appointment, error) {

	if reason == "" {
		reason = defaultCancelReason
	}

	wasCompleted := domain.Status(ap.Status) == domain.StatusCompleted

	if err := domain.Cancel(ap, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Cancelling a completed appointment reverses its sale. A failure here
	// leaves a stray sale row but must not undo the cancellation.
	if wasCompleted {
		if err := uc.repo.DeleteSaleByAppointment(ctx, ap.ID); err != nil {
			uc.log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("sale reversal failed")
		}
	}

	uc.cache.Invalidate(ctx, ap.EmployeeID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"motivo": reason},
	})

	if detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID); err == nil {
		uc.notifier.BookingCancelled(ctx, detail, reason)
	} else {
		uc.log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("detail lookup for notification failed")
	}

	return ap, nil
}
