package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/cache"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
)

// ReactivateAppointment undoes a mistaken cancellation, putting the
// appointment back as confirmed. The slot may have been rebooked in the
// meantime, so the write re-enters the exclusivity constraint.
type ReactivateAppointment struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewReactivateAppointment(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	auditor *audit.Dispatcher,
) *ReactivateAppointment {
	return &ReactivateAppointment{
		repo:  repo,
		cache: c,
		audit: auditor,
	}
}

func (uc *ReactivateAppointment) Execute(
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

	if err := domain.Reactivate(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.EmployeeID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "appointment_reactivated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
