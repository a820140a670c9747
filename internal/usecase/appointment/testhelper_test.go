package appointment

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
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
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory database keeps the schema visible across
	// pooled connections while isolating each test.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared",
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

type fixture struct {
	db   *gorm.DB
	repo *repository.AppointmentGormRepository

	availability *GetAvailability
	create       *CreateAppointment
	confirm      *ConfirmAppointment
	cancel       *CancelAppointment
	complete     *CompleteAppointment
	reactivate   *ReactivateAppointment
	expire       *ExpireAppointments
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	repo := repository.NewAppointmentGormRepository(db)

	log := zerolog.Nop()
	dispatcher := audit.NewDispatcher(audit.New(db), log)
	notifier := notify.NewNotifier(nil, nil, "http://localhost:8080", "", log)

	availability := NewGetAvailability(repo, nil)

	return &fixture{
		db:           db,
		repo:         repo,
		availability: availability,
		create: NewCreateAppointment(
			repo, availability, nil, notifier, dispatcher,
			time.UTC, "+549", log,
		),
		confirm:    NewConfirmAppointment(repo, dispatcher),
		cancel:     NewCancelAppointment(repo, nil, notifier, dispatcher, log),
		complete:   NewCompleteAppointment(repo, notifier, dispatcher, log),
		reactivate: NewReactivateAppointment(repo, nil, dispatcher),
		expire:     NewExpireAppointments(repo, dispatcher, time.UTC, log),
	}
}

func (f *fixture) seedEmployee(t *testing.T, name string) *models.Employee {
	t.Helper()

	emp := &models.Employee{
		Name:       name,
		DocumentID: fmt.Sprintf("doc-%s-%d", name, time.Now().UnixNano()),
		Active:     true,
	}
	require.NoError(t, f.db.Create(emp).Error)
	return emp
}

func (f *fixture) seedService(t *testing.T, name string, price float64) *models.Service {
	t.Helper()

	svc := &models.Service{
		Name:        name,
		Price:       price,
		DurationMin: 60,
		Active:      true,
	}
	require.NoError(t, f.db.Create(svc).Error)
	return svc
}

// seedFullWeek gives the employee the standard 10:00 to 18:00 schedule on
// every weekday.
func (f *fixture) seedFullWeek(t *testing.T, employeeID uint) {
	t.Helper()

	for _, day := range []string{
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	} {
		require.NoError(t, f.db.Create(&models.WorkingHours{
			EmployeeID: employeeID,
			Weekday:    day,
			StartTime:  "10:00:00",
			EndTime:    "18:00:00",
			Active:     true,
		}).Error)
	}
}

// tomorrow returns a normalized future date so slot-in-past checks never
// interfere.
func tomorrow() (time.Time, string) {
	d := calendar.DateOnly(time.Now().UTC().AddDate(0, 0, 1))
	return d, d.Format(calendar.DateLayout)
}
