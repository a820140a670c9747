package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/cache"
	"github.com/highburybarber/booking-api/internal/calendar"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/metrics"
	"github.com/highburybarber/booking-api/internal/models"
	"github.com/highburybarber/booking-api/internal/notify"
	"github.com/highburybarber/booking-api/internal/validators"
)

type CreateInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   uint
	// EmployeeID zero means "any barber": the first active employee with
	// the slot free takes the booking.
	EmployeeID uint
	Date       string
	TimeSlot   string
}

type CreateAppointment struct {
	repo         domain.Repository
	availability *GetAvailability
	cache        *cache.AvailabilityCache
	notifier     *notify.Notifier
	audit        *audit.Dispatcher
	loc          *time.Location
	phonePrefix  string
	log          zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	availability *GetAvailability,
	c *cache.AvailabilityCache,
	notifier *notify.Notifier,
	auditor *audit.Dispatcher,
	loc *time.Location,
	phonePrefix string,
	log zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		availability: availability,
		cache:        c,
		notifier:     notifier,
		audit:        auditor,
		loc:          loc,
		phonePrefix:  phonePrefix,
		log:          log,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, httperr.ErrBusiness("missing_client_name")
	}

	in.ClientEmail = strings.TrimSpace(strings.ToLower(in.ClientEmail))
	if in.ClientEmail != "" && !validators.IsValidEmail(in.ClientEmail) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if _, err := calendar.ParseSlot(in.TimeSlot); err != nil {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	slotInstant, err := calendar.SlotTime(date, in.TimeSlot, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_slot")
	}
	if calendar.IsPast(slotInstant, time.Now().In(uc.loc)) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	employeeID := in.EmployeeID
	if employeeID == 0 {
		employeeID, err = uc.pickEmployee(ctx, date, in.TimeSlot)
		if err != nil {
			return nil, err
		}
	} else {
		emp, err := uc.repo.GetEmployee(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("employee_not_found")
			}
			return nil, err
		}
		if !emp.Active {
			return nil, httperr.ErrBusiness("employee_not_found")
		}

		avail, err := uc.availability.ForEmployee(ctx, employeeID, date)
		if err != nil {
			return nil, err
		}
		if !slotOffered(avail, in.TimeSlot) {
			metrics.SlotConflicts.Inc()
			return nil, httperr.ErrBusiness("slot_conflict")
		}
	}

	ap := &models.Appointment{
		ClientName:        in.ClientName,
		ClientEmail:       in.ClientEmail,
		ClientPhone:       validators.NormalizePhone(in.ClientPhone, uc.phonePrefix),
		ServiceID:         svc.ID,
		EmployeeID:        employeeID,
		Date:              date,
		TimeSlot:          in.TimeSlot,
		Status:            string(domain.InitialStatus()),
		ConfirmationToken: uuid.NewString(),
	}

	// The storage-layer unique constraint is the real exclusivity check;
	// everything above was advisory and can race.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			metrics.SlotConflicts.Inc()
		}
		return nil, err
	}

	metrics.AppointmentsCreated.Inc()
	uc.cache.Invalidate(ctx, employeeID, date)

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorClient,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"fecha": in.Date,
			"hora":  in.TimeSlot,
		},
	})

	uc.notifyCreated(ctx, ap.ID)

	return ap, nil
}

// pickEmployee walks the active employees in listing order and takes the
// first one with the requested slot still open.
func (uc *CreateAppointment) pickEmployee(
	ctx context.Context,
	date time.Time,
	slot string,
) (uint, error) {

	employees, err := uc.repo.ListActiveEmployees(ctx)
	if err != nil {
		return 0, err
	}

	for _, emp := range employees {
		avail, err := uc.availability.ForEmployee(ctx, emp.ID, date)
		if err != nil {
			return 0, err
		}
		if slotOffered(avail, slot) {
			return emp.ID, nil
		}
	}

	metrics.SlotConflicts.Inc()
	return 0, httperr.ErrBusiness("slot_conflict")
}

func slotOffered(avail *domain.EmployeeAvailability, slot string) bool {
	if !avail.Available {
		return false
	}
	for _, s := range avail.Slots {
		if s.Slot == slot && s.Available {
			return true
		}
	}
	return false
}

func (uc *CreateAppointment) notifyCreated(ctx context.Context, id uint) {
	detail, err := uc.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		uc.log.Warn().Err(err).Uint("appointment_id", id).Msg("detail lookup for notification failed")
		return
	}

	if uc.notifier.BookingConfirmed(ctx, detail) {
		if err := uc.repo.MarkConfirmationEmailSent(ctx, id); err != nil {
			uc.log.Warn().Err(err).Uint("appointment_id", id).Msg("could not flag confirmation email")
		}
	}
}
