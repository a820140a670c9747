package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/calendar"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/dto"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *AppointmentGormRepository) ListActiveEmployees(
	ctx context.Context,
) ([]models.Employee, error) {

	var emps []models.Employee
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Schedule store
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	employeeID uint,
	weekday string,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND weekday = ? AND active = ?", employeeID, weekday, true).
		First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Blackout store
// --------------------------------------------------

func (r *AppointmentGormRepository) HasBlackout(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Blackout{}).
		Where("employee_id = ? AND start_date <= ? AND end_date >= ?",
			employeeID, date, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) IsHoliday(
	ctx context.Context,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Holiday{}).
		Where("date = ?", date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Booking ledger
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedSlots(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) ([]string, error) {

	var slots []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("employee_id = ? AND date = ? AND status <> ?",
			employeeID, date, string(domain.StatusCancelled)).
		Order("time_slot ASC").
		Pluck("time_slot", &slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_conflict")
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("confirmation_token = ?", token).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_conflict")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Read-side projection
// --------------------------------------------------

const detailSelect = `
    c.id, c.client_name, c.client_email, c.client_phone,
    c.service_id, s.name AS service_name, s.price AS service_price,
    c.employee_id, e.name AS employee_name,
    c.date, c.time_slot, c.status, c.cancellation_reason,
    c.confirmation_token,
    c.confirmation_email_sent, c.reminder_sent, c.receipt_email_sent,
    c.created_at`

func (r *AppointmentGormRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments AS c").
		Select(detailSelect).
		Joins("INNER JOIN services s ON c.service_id = s.id").
		Joins("INNER JOIN employees e ON c.employee_id = e.id")
}

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	id uint,
) (*dto.AppointmentDetail, error) {

	var detail dto.AppointmentDetail
	if err := r.detailQuery(ctx).
		Where("c.id = ?", id).
		Take(&detail).Error; err != nil {
		return nil, err
	}

	detail.IsPast = detail.Date.Before(calendar.DateOnly(time.Now()))
	return &detail, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	status string,
) ([]dto.AppointmentDetail, error) {

	q := r.detailQuery(ctx)
	if status != "" {
		q = q.Where("c.status = ?", status)
	}

	var details []dto.AppointmentDetail
	if err := q.Find(&details).Error; err != nil {
		return nil, err
	}

	today := calendar.DateOnly(time.Now())
	for i := range details {
		details[i].IsPast = details[i].Date.Before(today)
	}

	// Upcoming first, then by date and slot.
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].IsPast != details[j].IsPast {
			return !details[i].IsPast
		}
		if !details[i].Date.Equal(details[j].Date) {
			return details[i].Date.Before(details[j].Date)
		}
		return details[i].TimeSlot < details[j].TimeSlot
	})

	return details, nil
}

func (r *AppointmentGormRepository) ListPendingUnreminded(
	ctx context.Context,
	dates []time.Time,
) ([]dto.AppointmentDetail, error) {

	var details []dto.AppointmentDetail
	if err := r.detailQuery(ctx).
		Where("c.status = ? AND c.reminder_sent = ? AND c.date IN ?",
			string(domain.StatusPending), false, dates).
		Order("c.date ASC, c.time_slot ASC").
		Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// --------------------------------------------------
// Notification flags
// --------------------------------------------------

func (r *AppointmentGormRepository) markFlag(
	ctx context.Context,
	id uint,
	column string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update(column, true).Error
}

func (r *AppointmentGormRepository) MarkReminderSent(ctx context.Context, id uint) error {
	return r.markFlag(ctx, id, "reminder_sent")
}

func (r *AppointmentGormRepository) MarkConfirmationEmailSent(ctx context.Context, id uint) error {
	return r.markFlag(ctx, id, "confirmation_email_sent")
}

func (r *AppointmentGormRepository) MarkReceiptEmailSent(ctx context.Context, id uint) error {
	return r.markFlag(ctx, id, "receipt_email_sent")
}

// --------------------------------------------------
// Expiry sweep
// --------------------------------------------------

func (r *AppointmentGormRepository) ExpireOverdue(
	ctx context.Context,
	cutoffDate time.Time,
	cutoffSlot string,
	reason string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("status IN ?", []string{
			string(domain.StatusPending),
			string(domain.StatusConfirmed),
		}).
		Where("date < ? OR (date = ? AND time_slot < ?)",
			cutoffDate, cutoffDate, cutoffSlot).
		Updates(map[string]any{
			"status":              string(domain.StatusCancelled),
			"cancellation_reason": reason,
		})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Sales
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateSale(
	ctx context.Context,
	sale *models.Sale,
) error {

	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		if isUniqueViolation(err) {
			// One sale per appointment; a concurrent complete already won.
			return nil
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) SaleExists(
	ctx context.Context,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) DeleteSaleByAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.Sale{}).Error
}

// --------------------------------------------------
// Error translation
// --------------------------------------------------

// isUniqueViolation recognizes the exclusivity index firing, across the
// postgres driver (23505), gorm's translated error and the sqlite driver
// used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
