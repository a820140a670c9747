package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/calendar"
	dbpkg "github.com/highburybarber/booking-api/internal/db"
	"github.com/highburybarber/booking-api/internal/infra/repository"
	"github.com/highburybarber/booking-api/internal/models"
	"github.com/highburybarber/booking-api/internal/notify"
	usecase "github.com/highburybarber/booking-api/internal/usecase/appointment"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:sweeperdb%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// recordingSender captures outgoing messages instead of delivering them.
type recordingSender struct {
	recipients []string
	fail       bool
}

func (s *recordingSender) Send(_ context.Context, recipient, _ string) error {
	if s.fail {
		return fmt.Errorf("gateway down")
	}
	s.recipients = append(s.recipients, recipient)
	return nil
}

func (s *recordingSender) IsReady() bool { return true }

type sweeperFixture struct {
	db     *gorm.DB
	sender *recordingSender
	sw     *Sweeper
}

func newSweeperFixture(t *testing.T) *sweeperFixture {
	t.Helper()

	db := setupTestDB(t)
	repo := repository.NewAppointmentGormRepository(db)
	log := zerolog.Nop()

	sender := &recordingSender{}
	notifier := notify.NewNotifier(nil, sender, "http://localhost:8080", "", log)

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	expirer := usecase.NewExpireAppointments(repo, dispatcher, time.UTC, log)

	return &sweeperFixture{
		db:     db,
		sender: sender,
		sw:     New(repo, notifier, expirer, time.UTC, log),
	}
}

func (f *sweeperFixture) seedAppointment(
	t *testing.T,
	date time.Time,
	slot, status string,
	reminded bool,
) *models.Appointment {
	t.Helper()

	emp := &models.Employee{Name: "Lucas", DocumentID: fmt.Sprintf("doc-%d", time.Now().UnixNano()), Active: true}
	require.NoError(t, f.db.Create(emp).Error)

	svc := &models.Service{Name: "Corte", Price: 500, Active: true}
	require.NoError(t, f.db.Create(svc).Error)

	ap := &models.Appointment{
		ClientName:        "Juan",
		ClientPhone:       "+5491123456789",
		ServiceID:         svc.ID,
		EmployeeID:        emp.ID,
		Date:              date,
		TimeSlot:          slot,
		Status:            status,
		ReminderSent:      reminded,
		ConfirmationToken: fmt.Sprintf("tok-%d", time.Now().UnixNano()),
	}
	require.NoError(t, f.db.Create(ap).Error)
	return ap
}

func TestRemindUpcomingInsideWindow(t *testing.T) {
	f := newSweeperFixture(t)

	now := time.Date(2026, 9, 15, 7, 30, 0, 0, time.UTC)
	today := calendar.DateOnly(now)

	// 11:00 is 3.5 hours away: inside the window.
	ap := f.seedAppointment(t, today, "11:00:00", "pendiente", false)

	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now))

	assert.Equal(t, []string{ap.ClientPhone}, f.sender.recipients)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.True(t, stored.ReminderSent)
}

func TestRemindUpcomingSkipsOutsideWindow(t *testing.T) {
	f := newSweeperFixture(t)

	now := time.Date(2026, 9, 15, 7, 30, 0, 0, time.UTC)
	today := calendar.DateOnly(now)

	// 09:00 is too close, 17:00 too far.
	f.seedAppointment(t, today, "09:00:00", "pendiente", false)
	f.seedAppointment(t, today, "17:00:00", "pendiente", false)

	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now))

	assert.Empty(t, f.sender.recipients)
}

func TestRemindUpcomingSendsOnce(t *testing.T) {
	f := newSweeperFixture(t)

	now := time.Date(2026, 9, 15, 7, 30, 0, 0, time.UTC)
	today := calendar.DateOnly(now)

	f.seedAppointment(t, today, "11:00:00", "pendiente", false)

	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now))
	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now.Add(30*time.Minute)))

	assert.Len(t, f.sender.recipients, 1)
}

func TestRemindUpcomingFlagsEvenWhenDeliveryFails(t *testing.T) {
	f := newSweeperFixture(t)
	f.sender.fail = true

	now := time.Date(2026, 9, 15, 7, 30, 0, 0, time.UTC)
	today := calendar.DateOnly(now)

	ap := f.seedAppointment(t, today, "11:00:00", "pendiente", false)

	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now))

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.True(t, stored.ReminderSent)
}

func TestRemindUpcomingIgnoresConfirmedAndReminded(t *testing.T) {
	f := newSweeperFixture(t)

	now := time.Date(2026, 9, 15, 7, 30, 0, 0, time.UTC)
	today := calendar.DateOnly(now)

	f.seedAppointment(t, today, "11:00:00", "confirmada", false)
	f.seedAppointment(t, today, "11:00:00", "pendiente", true)

	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now))

	assert.Empty(t, f.sender.recipients)
}

func TestRemindUpcomingWindowAcrossMidnight(t *testing.T) {
	f := newSweeperFixture(t)

	now := time.Date(2026, 9, 15, 21, 30, 0, 0, time.UTC)
	tomorrow := calendar.DateOnly(now).AddDate(0, 0, 1)

	// 01:00 tomorrow is 3.5 hours away.
	ap := f.seedAppointment(t, tomorrow, "01:00:00", "pendiente", false)

	require.NoError(t, f.sw.RemindUpcoming(context.Background(), now))

	assert.Equal(t, []string{ap.ClientPhone}, f.sender.recipients)
}
