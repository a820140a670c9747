package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/dto"
	"github.com/highburybarber/booking-api/internal/httperr"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointment details, optionally narrowed to one status.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	status string,
) ([]dto.AppointmentDetail, error) {

	if status != "" && !domain.IsValidStatus(status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	return uc.repo.ListAppointments(ctx, status)
}

func (uc *ListAppointments) One(
	ctx context.Context,
	id uint,
) (*dto.AppointmentDetail, error) {

	detail, err := uc.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return detail, nil
}
