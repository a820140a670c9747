package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/dto"
	"github.com/highburybarber/booking-api/internal/usecase/report"
)

type SalesGormRepository struct {
	db *gorm.DB
}

func NewSalesGormRepository(db *gorm.DB) *SalesGormRepository {
	return &SalesGormRepository{db: db}
}

const salesSelect = `
	sales.id, sales.appointment_id, sales.date, sales.amount,
	appointments.time_slot, appointments.client_name,
	sales.employee_id, employees.name AS employee_name,
	sales.service_id, services.name AS service_name`

func (r *SalesGormRepository) ListSales(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]dto.SaleDetail, error) {

	var rows []dto.SaleDetail
	err := r.db.WithContext(ctx).
		Table("sales").
		Select(salesSelect).
		Joins("LEFT JOIN appointments ON appointments.id = sales.appointment_id").
		Joins("LEFT JOIN employees ON employees.id = sales.employee_id").
		Joins("LEFT JOIN services ON services.id = sales.service_id").
		Where("sales.date >= ? AND sales.date <= ?", from, to).
		Order("sales.date ASC, appointments.time_slot ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ report.Repository = (*SalesGormRepository)(nil)
