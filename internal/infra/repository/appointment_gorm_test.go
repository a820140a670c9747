package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/highburybarber/booking-api/internal/calendar"
	dbpkg "github.com/highburybarber/booking-api/internal/db"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repodb%d?mode=memory&cache=shared",
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

func seedRefs(t *testing.T, db *gorm.DB) (*models.Employee, *models.Service) {
	t.Helper()

	emp := &models.Employee{Name: "Lucas", DocumentID: fmt.Sprintf("doc-%d", time.Now().UnixNano()), Active: true}
	require.NoError(t, db.Create(emp).Error)

	svc := &models.Service{Name: "Corte", Price: 500, Active: true}
	require.NoError(t, db.Create(svc).Error)

	return emp, svc
}

func TestSlotExclusivityIndex(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAppointmentGormRepository(db)
	emp, svc := seedRefs(t, db)

	date, _ := calendar.ParseDate("2026-09-15")

	first := &models.Appointment{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: date, TimeSlot: "10:00:00", Status: "pendiente",
		ConfirmationToken: "tok-1",
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), first))

	dup := &models.Appointment{
		ClientName: "Pedro", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: date, TimeSlot: "10:00:00", Status: "pendiente",
		ConfirmationToken: "tok-2",
	}
	err := repo.CreateAppointment(context.Background(), dup)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	// Cancelled rows do not hold the slot.
	require.NoError(t, db.Model(first).Update("status", "cancelada").Error)
	require.NoError(t, repo.CreateAppointment(context.Background(), dup))
}

func TestSlotExclusivityDifferentEmployee(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAppointmentGormRepository(db)
	lucas, svc := seedRefs(t, db)
	mateo := &models.Employee{Name: "Mateo", DocumentID: fmt.Sprintf("doc-%d", time.Now().UnixNano()), Active: true}
	require.NoError(t, db.Create(mateo).Error)

	date, _ := calendar.ParseDate("2026-09-15")

	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: lucas.ID,
		Date: date, TimeSlot: "10:00:00", Status: "pendiente",
		ConfirmationToken: "tok-1",
	}))

	// Same slot, other barber: allowed.
	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ClientName: "Pedro", ServiceID: svc.ID, EmployeeID: mateo.ID,
		Date: date, TimeSlot: "10:00:00", Status: "pendiente",
		ConfirmationToken: "tok-2",
	}))
}

func TestExpireOverdueBoundary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAppointmentGormRepository(db)
	emp, svc := seedRefs(t, db)

	cutoffDate, _ := calendar.ParseDate("2026-09-15")

	mk := func(slot, token string) *models.Appointment {
		ap := &models.Appointment{
			ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
			Date: cutoffDate, TimeSlot: slot, Status: "pendiente",
			ConfirmationToken: token,
		}
		require.NoError(t, db.Create(ap).Error)
		return ap
	}

	before := mk("11:00:00", "t1")
	atCutoff := mk("12:00:00", "t2")
	after := mk("14:00:00", "t3")

	n, err := repo.ExpireOverdue(context.Background(), cutoffDate, "12:00:00", "vencida")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	status := func(id uint) string {
		var ap models.Appointment
		require.NoError(t, db.First(&ap, id).Error)
		return ap.Status
	}

	// Strictly-before semantics: the cutoff slot itself survives.
	assert.Equal(t, "cancelada", status(before.ID))
	assert.Equal(t, "pendiente", status(atCutoff.ID))
	assert.Equal(t, "pendiente", status(after.ID))
}

func TestGetAppointmentDetailJoinsNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAppointmentGormRepository(db)
	emp, svc := seedRefs(t, db)

	date, _ := calendar.ParseDate("2026-09-15")

	ap := &models.Appointment{
		ClientName: "Juan", ClientEmail: "juan@example.com",
		ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: date, TimeSlot: "10:00:00", Status: "pendiente",
		ConfirmationToken: "tok-1",
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))

	detail, err := repo.GetAppointmentDetail(context.Background(), ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "Lucas", detail.EmployeeName)
	assert.Equal(t, "Corte", detail.ServiceName)
	assert.Equal(t, 500.0, detail.ServicePrice)
	assert.Equal(t, "tok-1", detail.ConfirmationToken)
}

func TestListAppointmentsFilterAndOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAppointmentGormRepository(db)
	emp, svc := seedRefs(t, db)

	past := calendar.DateOnly(time.Now().UTC().AddDate(0, 0, -7))
	future := calendar.DateOnly(time.Now().UTC().AddDate(0, 0, 7))

	mk := func(date time.Time, slot, status, token string) {
		require.NoError(t, db.Create(&models.Appointment{
			ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
			Date: date, TimeSlot: slot, Status: status,
			ConfirmationToken: token,
		}).Error)
	}

	mk(past, "10:00:00", "completada", "t1")
	mk(future, "11:00:00", "pendiente", "t2")
	mk(future, "10:00:00", "pendiente", "t3")

	all, err := repo.ListAppointments(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Upcoming first, ordered by slot; the past one sinks to the bottom.
	assert.Equal(t, "10:00:00", all[0].TimeSlot)
	assert.False(t, all[0].IsPast)
	assert.True(t, all[2].IsPast)

	pending, err := repo.ListAppointments(context.Background(), "pendiente")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
