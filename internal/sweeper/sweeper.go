package sweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/highburybarber/booking-api/internal/calendar"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/metrics"
	"github.com/highburybarber/booking-api/internal/notify"
	usecase "github.com/highburybarber/booking-api/internal/usecase/appointment"
)

const (
	reminderSchedule = "*/30 * * * *"
	expirySchedule   = "0 * * * *"

	// Reminders go out when the slot is between 3 and 4 hours away. The
	// window is one hour wide and the job runs every 30 minutes, so every
	// appointment gets at least one shot at it; the sent flag keeps it to
	// exactly one message.
	reminderFrom = 3 * time.Hour
	reminderTo   = 4 * time.Hour
)

// Sweeper owns the two time-driven jobs: pre-appointment reminders and
// overdue auto-expiry.
type Sweeper struct {
	repo     domain.Repository
	notifier *notify.Notifier
	expirer  *usecase.ExpireAppointments
	loc      *time.Location
	log      zerolog.Logger

	cron    *cron.Cron
	limiter *rate.Limiter
}

func New(
	repo domain.Repository,
	notifier *notify.Notifier,
	expirer *usecase.ExpireAppointments,
	loc *time.Location,
	log zerolog.Logger,
) *Sweeper {
	return &Sweeper{
		repo:     repo,
		notifier: notifier,
		expirer:  expirer,
		loc:      loc,
		log:      log,
		cron:     cron.New(cron.WithLocation(loc)),
		limiter:  rate.NewLimiter(rate.Limit(1), 1),
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(reminderSchedule, s.runReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(expirySchedule, s.runExpiry); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Msg("sweeper started")
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("sweeper stopped")
}

func (s *Sweeper) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.RemindUpcoming(ctx, time.Now()); err != nil {
		s.log.Error().Err(err).Msg("reminder sweep failed")
	}
}

func (s *Sweeper) runExpiry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.expirer.Execute(ctx, time.Now()); err != nil {
		s.log.Error().Err(err).Msg("expiry sweep failed")
	}
}

// RemindUpcoming sends the reminder for every pending, not-yet-reminded
// appointment whose slot falls inside the reminder window. The sent flag is
// set whether or not delivery worked: a flaky gateway must not make the
// same client receive the message twice on a later sweep.
func (s *Sweeper) RemindUpcoming(ctx context.Context, now time.Time) error {
	now = now.In(s.loc)

	// The window can straddle midnight, so both calendar days are
	// candidate dates.
	dates := []time.Time{
		calendar.DateOnly(now.Add(reminderFrom)),
		calendar.DateOnly(now.Add(reminderTo)),
	}
	if dates[1].Equal(dates[0]) {
		dates = dates[:1]
	}

	candidates, err := s.repo.ListPendingUnreminded(ctx, dates)
	if err != nil {
		return err
	}

	for _, d := range candidates {
		slotInstant, err := calendar.SlotTime(d.Date, d.TimeSlot, s.loc)
		if err != nil {
			s.log.Warn().Err(err).Uint("appointment_id", d.ID).Msg("unparseable slot, skipping")
			continue
		}
		if !calendar.WithinWindow(slotInstant, now, reminderFrom, reminderTo) {
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		detail := d
		if err := s.notifier.Reminder(ctx, &detail); err != nil {
			s.log.Warn().Err(err).Uint("appointment_id", d.ID).Msg("reminder delivery failed")
		} else {
			metrics.RemindersSent.Inc()
		}

		if err := s.repo.MarkReminderSent(ctx, d.ID); err != nil {
			s.log.Error().Err(err).Uint("appointment_id", d.ID).Msg("could not flag reminder")
		}
	}

	return nil
}
