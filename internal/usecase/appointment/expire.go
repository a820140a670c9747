package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/calendar"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/metrics"
)

const (
	// Grace window before an unattended appointment is written off.
	expiryGrace = 3 * time.Hour

	expiryReason = "Cancelada automáticamente por vencimiento"
)

// ExpireAppointments bulk-cancels pending and confirmed appointments whose
// slot passed more than the grace window ago.
type ExpireAppointments struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	log   zerolog.Logger
}

func NewExpireAppointments(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	loc *time.Location,
	log zerolog.Logger,
) *ExpireAppointments {
	return &ExpireAppointments{
		repo:  repo,
		audit: auditor,
		loc:   loc,
		log:   log,
	}
}

func (uc *ExpireAppointments) Execute(ctx context.Context, now time.Time) (int64, error) {
	// The cutoff instant is split into a date and a slot so the store can
	// compare its date and time columns directly.
	cutoff := now.In(uc.loc).Add(-expiryGrace)
	cutoffDate := calendar.DateOnly(cutoff)
	cutoffSlot := cutoff.Format(calendar.SlotLayout)

	n, err := uc.repo.ExpireOverdue(ctx, cutoffDate, cutoffSlot, expiryReason)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		metrics.AppointmentsExpired.Add(float64(n))
		uc.log.Info().Int64("expired", n).Msg("overdue appointments auto-cancelled")

		uc.audit.Dispatch(audit.Event{
			Actor:    audit.ActorSweeper,
			Action:   "appointments_expired",
			Entity:   "appointment",
			Metadata: map[string]any{"count": n},
		})
	}

	return n, nil
}
