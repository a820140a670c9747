package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/audit"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
	"github.com/highburybarber/booking-api/internal/notify"
)

type CompleteAppointment struct {
	repo     domain.Repository
	notifier *notify.Notifier
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewCompleteAppointment(
	repo domain.Repository,
	notifier *notify.Notifier,
	auditor *audit.Dispatcher,
	log zerolog.Logger,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
		log:      log,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := domain.Complete(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if err := uc.recordSale(ctx, ap); err != nil {
		uc.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("sale record failed")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.sendReceipt(ctx, ap)

	return ap, nil
}

// recordSale writes exactly one sale per completed appointment: a repeated
// complete call, or a reactivate-then-complete cycle, must not double the
// revenue ledger.
func (uc *CompleteAppointment) recordSale(ctx context.Context, ap *models.Appointment) error {
	exists, err := uc.repo.SaleExists(ctx, ap.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	svc, err := uc.repo.GetService(ctx, ap.ServiceID)
	if err != nil {
		return err
	}

	return uc.repo.CreateSale(ctx, &models.Sale{
		AppointmentID: ap.ID,
		EmployeeID:    ap.EmployeeID,
		ServiceID:     ap.ServiceID,
		Amount:        svc.Price,
		Date:          ap.Date,
	})
}

func (uc *CompleteAppointment) sendReceipt(ctx context.Context, ap *models.Appointment) {
	if ap.ReceiptEmailSent {
		return
	}

	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		uc.log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("detail lookup for receipt failed")
		return
	}

	if uc.notifier.Receipt(ctx, detail) {
		if err := uc.repo.MarkReceiptEmailSent(ctx, ap.ID); err != nil {
			uc.log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("could not flag receipt email")
		}
	}
}
