package appointment

import (
	"context"
	"time"

	"github.com/highburybarber/booking-api/internal/dto"
	"github.com/highburybarber/booking-api/internal/models"
)

// Repository gathers the three stores the booking engine composes: the
// schedule store (working hours), the blackout store (blackouts +
// holidays) and the booking ledger (appointments + sales).
type Repository interface {
	// -------- Reference data --------
	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	ListActiveEmployees(
		ctx context.Context,
	) ([]models.Employee, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Schedule store --------
	GetWorkingHours(
		ctx context.Context,
		employeeID uint,
		weekday string,
	) (*models.WorkingHours, error)

	// -------- Blackout store --------
	HasBlackout(
		ctx context.Context,
		employeeID uint,
		date time.Time,
	) (bool, error)

	IsHoliday(
		ctx context.Context,
		date time.Time,
	) (bool, error)

	// -------- Booking ledger --------
	ListBookedSlots(
		ctx context.Context,
		employeeID uint,
		date time.Time,
	) ([]string, error)

	// CreateAppointment is the authoritative exclusivity check: the
	// storage-layer unique constraint decides, and a violation surfaces
	// as the slot_conflict business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	GetAppointmentDetail(
		ctx context.Context,
		id uint,
	) (*dto.AppointmentDetail, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		status string,
	) ([]dto.AppointmentDetail, error)

	// ListPendingUnreminded returns pending, not-yet-reminded
	// appointments on the given dates; the caller narrows to the exact
	// reminder window.
	ListPendingUnreminded(
		ctx context.Context,
		dates []time.Time,
	) ([]dto.AppointmentDetail, error)

	MarkReminderSent(ctx context.Context, id uint) error
	MarkConfirmationEmailSent(ctx context.Context, id uint) error
	MarkReceiptEmailSent(ctx context.Context, id uint) error

	// ExpireOverdue bulk-cancels pending/confirmed appointments whose
	// slot lies strictly before the cutoff. Returns the number of rows
	// transitioned.
	ExpireOverdue(
		ctx context.Context,
		cutoffDate time.Time,
		cutoffSlot string,
		reason string,
	) (int64, error)

	// -------- Sales --------
	CreateSale(
		ctx context.Context,
		sale *models.Sale,
	) error

	SaleExists(
		ctx context.Context,
		appointmentID uint,
	) (bool, error)

	DeleteSaleByAppointment(
		ctx context.Context,
		appointmentID uint,
	) error
}
