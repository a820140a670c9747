package report

import (
	"context"
	"time"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/dto"
	"github.com/highburybarber/booking-api/internal/httperr"
)

// Repository is the read model the reports are computed from.
type Repository interface {
	ListSales(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]dto.SaleDetail, error)
}

type EmployeeTotal struct {
	EmployeeID   uint    `json:"empleado_id"`
	EmployeeName string  `json:"empleado_nombre"`
	Count        int     `json:"cantidad"`
	Total        float64 `json:"total"`
}

type ServiceTotal struct {
	ServiceID   uint    `json:"servicio_id"`
	ServiceName string  `json:"servicio_nombre"`
	Count       int     `json:"cantidad"`
	Total       float64 `json:"total"`
}

type Summary struct {
	From time.Time `json:"desde"`
	To   time.Time `json:"hasta"`

	Count int     `json:"cantidad"`
	Total float64 `json:"total"`

	PerEmployee []EmployeeTotal `json:"por_empleado"`
	PerService  []ServiceTotal  `json:"por_servicio"`

	Sales []dto.SaleDetail `json:"ventas"`
}

type GetReport struct {
	repo Repository
}

func NewGetReport(repo Repository) *GetReport {
	return &GetReport{repo: repo}
}

func (uc *GetReport) ForDay(ctx context.Context, date time.Time) (*Summary, error) {
	return uc.ForRange(ctx, date, date)
}

func (uc *GetReport) ForRange(ctx context.Context, from, to time.Time) (*Summary, error) {
	from = calendar.DateOnly(from)
	to = calendar.DateOnly(to)
	if to.Before(from) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	sales, err := uc.repo.ListSales(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:        from,
		To:          to,
		Count:       len(sales),
		PerEmployee: []EmployeeTotal{},
		PerService:  []ServiceTotal{},
		Sales:       sales,
	}

	byEmployee := map[uint]int{}
	byService := map[uint]int{}

	for _, s := range sales {
		summary.Total += s.Amount

		idx, ok := byEmployee[s.EmployeeID]
		if !ok {
			idx = len(summary.PerEmployee)
			byEmployee[s.EmployeeID] = idx
			summary.PerEmployee = append(summary.PerEmployee, EmployeeTotal{
				EmployeeID:   s.EmployeeID,
				EmployeeName: s.EmployeeName,
			})
		}
		summary.PerEmployee[idx].Count++
		summary.PerEmployee[idx].Total += s.Amount

		idx, ok = byService[s.ServiceID]
		if !ok {
			idx = len(summary.PerService)
			byService[s.ServiceID] = idx
			summary.PerService = append(summary.PerService, ServiceTotal{
				ServiceID:   s.ServiceID,
				ServiceName: s.ServiceName,
			})
		}
		summary.PerService[idx].Count++
		summary.PerService[idx].Total += s.Amount
	}

	return summary, nil
}
