package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/audit"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *ConfirmAppointment) Execute(
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

	return uc.confirm(ctx, ap, audit.ActorAdmin)
}

// ExecuteByToken is the link-click path. A token whose appointment already
// left the pending state yields already_processed together with the
// appointment, so the page can still describe it.
func (uc *ConfirmAppointment) ExecuteByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("token_not_found")
		}
		return nil, err
	}

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		return ap, httperr.ErrBusiness("already_processed")
	}

	return uc.confirm(ctx, ap, audit.ActorClient)
}

func (uc *ConfirmAppointment) confirm(
	ctx context.Context,
	ap *models.Appointment,
	actor string,
) (*models.Appointment, error) {

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
