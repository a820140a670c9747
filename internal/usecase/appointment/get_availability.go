package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/cache"
	"github.com/highburybarber/booking-api/internal/calendar"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
)

const (
	msgHoliday  = "La barbería está cerrada en días festivos"
	msgBlackout = "Empleado no disponible en esta fecha"
	msgDayOff   = "Empleado no trabaja este día"
)

// GetAvailability answers "which slots are free" for a date, either for a
// single employee or aggregated over all active ones. Its answers are
// advisory: the authoritative exclusivity check happens at create time.
type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(repo domain.Repository, c *cache.AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

// ForEmployeeByID answers for one requested employee, validating that the
// employee exists. The response is the flat per-employee shape.
func (uc *GetAvailability) ForEmployeeByID(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (*domain.EmployeeAvailability, error) {

	emp, err := uc.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
		return nil, err
	}

	return uc.ForEmployee(ctx, emp.ID, date)
}

// ForEmployee resolves one employee's day. The holiday check runs first;
// it is shop-wide and cannot be overridden by anything employee-level.
func (uc *GetAvailability) ForEmployee(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (*domain.EmployeeAvailability, error) {

	if cached, ok := uc.cache.Get(ctx, employeeID, date); ok {
		return cached, nil
	}

	avail, err := uc.resolveEmployee(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, employeeID, date, avail)
	return avail, nil
}

func (uc *GetAvailability) resolveEmployee(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (*domain.EmployeeAvailability, error) {

	holiday, err := uc.repo.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}
	if holiday {
		return closedDay(msgHoliday), nil
	}

	blocked, err := uc.repo.HasBlackout(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if blocked {
		return closedDay(msgBlackout), nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, employeeID, calendar.WeekdayName(date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return closedDay(msgDayOff), nil
		}
		return nil, err
	}

	candidates := calendar.EnumerateSlots(wh.StartTime, wh.EndTime)

	taken, err := uc.repo.ListBookedSlots(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		takenSet[s] = struct{}{}
	}

	free := make([]domain.SlotStatus, 0, len(candidates))
	for _, slot := range candidates {
		if _, booked := takenSet[slot]; booked {
			continue
		}
		free = append(free, domain.SlotStatus{Slot: slot, Available: true})
	}

	return &domain.EmployeeAvailability{
		Available: len(free) > 0,
		Slots:     free,
	}, nil
}

// ForAllEmployees reports the union of free slots over every active
// employee plus the per-employee breakdown.
func (uc *GetAvailability) ForAllEmployees(
	ctx context.Context,
	date time.Time,
) (*domain.AggregateAvailability, error) {

	// Shop-wide short-circuit before touching any employee.
	holiday, err := uc.repo.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}
	if holiday {
		return &domain.AggregateAvailability{
			Available:      false,
			Message:        msgHoliday,
			AvailableSlots: []string{},
			PerEmployee:    []domain.EmployeeAvailabilityEntry{},
		}, nil
	}

	employees, err := uc.repo.ListActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}

	union := make(map[string]struct{})
	entries := make([]domain.EmployeeAvailabilityEntry, 0, len(employees))

	for _, emp := range employees {
		avail, err := uc.ForEmployee(ctx, emp.ID, date)
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.EmployeeAvailabilityEntry{
			EmployeeID:           emp.ID,
			EmployeeName:         emp.Name,
			EmployeeAvailability: *avail,
		})

		if avail.Available {
			for _, slot := range avail.Slots {
				union[slot.Slot] = struct{}{}
			}
		}
	}

	slots := make([]string, 0, len(union))
	for slot := range union {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	return &domain.AggregateAvailability{
		Available:      len(slots) > 0,
		AvailableSlots: slots,
		PerEmployee:    entries,
	}, nil
}

func closedDay(msg string) *domain.EmployeeAvailability {
	return &domain.EmployeeAvailability{
		Available: false,
		Message:   msg,
		Slots:     []domain.SlotStatus{},
	}
}
