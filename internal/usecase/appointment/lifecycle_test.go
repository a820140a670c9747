package appointment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/models"
)

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName:  "Juan Pérez",
		ClientEmail: "Juan@Example.com",
		ClientPhone: "11 2345-6789",
		ServiceID:   svc.ID,
		EmployeeID:  emp.ID,
		Date:        dateStr,
		TimeSlot:    "10:00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "pendiente", ap.Status)
	assert.NotEmpty(t, ap.ConfirmationToken)
	assert.Equal(t, "juan@example.com", ap.ClientEmail)
	assert.Equal(t, "+5491123456789", ap.ClientPhone)
	assert.False(t, ap.ReminderSent)
}

func TestCreateAppointmentSerializesFlat(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan",
		ServiceID:  svc.ID,
		EmployeeID: emp.ID,
		Date:       dateStr,
		TimeSlot:   "10:00:00",
	})
	require.NoError(t, err)

	body, err := json.Marshal(ap)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))

	// Only the flat ids; the unloaded association structs stay out of
	// the 201 payload, and so does the confirmation token.
	assert.NotContains(t, payload, "servicio")
	assert.NotContains(t, payload, "empleado")
	assert.NotContains(t, payload, "confirmation_token")
	assert.Equal(t, float64(svc.ID), payload["servicio_id"])
	assert.Equal(t, float64(emp.ID), payload["empleado_id"])
	assert.Equal(t, "10:00:00", payload["hora"])
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	in := CreateInput{
		ClientName: "Juan",
		ServiceID:  svc.ID,
		EmployeeID: emp.ID,
		Date:       dateStr,
		TimeSlot:   "10:00:00",
	}

	_, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)

	in.ClientName = "Pedro"
	_, err = f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestCreateAppointmentAnyEmployeeSkipsBusyBarber(t *testing.T) {
	f := newFixture(t)
	lucas := f.seedEmployee(t, "Lucas")
	mateo := f.seedEmployee(t, "Mateo")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, lucas.ID)
	f.seedFullWeek(t, mateo.ID)
	_, dateStr := tomorrow()

	first, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan",
		ServiceID:  svc.ID,
		Date:       dateStr,
		TimeSlot:   "10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, lucas.ID, first.EmployeeID)

	second, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Pedro",
		ServiceID:  svc.ID,
		Date:       dateStr,
		TimeSlot:   "10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, mateo.ID, second.EmployeeID)

	// Both barbers taken now.
	_, err = f.create.Execute(context.Background(), CreateInput{
		ClientName: "Diego",
		ServiceID:  svc.ID,
		Date:       dateStr,
		TimeSlot:   "10:00:00",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestCreateAppointmentRejectsPastSlot(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)

	_, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan",
		ServiceID:  svc.ID,
		EmployeeID: emp.ID,
		Date:       "2020-01-01",
		TimeSlot:   "10:00:00",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_in_past"))
}

func TestCreateAppointmentRejectsInactiveService(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	require.NoError(t, f.db.Model(&models.Service{}).
		Where("id = ?", svc.ID).Update("active", false).Error)
	_, dateStr := tomorrow()

	_, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan",
		ServiceID:  svc.ID,
		EmployeeID: emp.ID,
		Date:       dateStr,
		TimeSlot:   "10:00:00",
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	cases := []struct {
		name string
		in   CreateInput
		code string
	}{
		{
			name: "empty client name",
			in:   CreateInput{ServiceID: svc.ID, EmployeeID: emp.ID, Date: dateStr, TimeSlot: "10:00:00"},
			code: "missing_client_name",
		},
		{
			name: "bad email",
			in: CreateInput{
				ClientName: "Juan", ClientEmail: "not-an-email",
				ServiceID: svc.ID, EmployeeID: emp.ID, Date: dateStr, TimeSlot: "10:00:00",
			},
			code: "invalid_email",
		},
		{
			name: "bad date",
			in: CreateInput{
				ClientName: "Juan",
				ServiceID:  svc.ID, EmployeeID: emp.ID, Date: "mañana", TimeSlot: "10:00:00",
			},
			code: "invalid_date",
		},
		{
			name: "bad slot",
			in: CreateInput{
				ClientName: "Juan",
				ServiceID:  svc.ID, EmployeeID: emp.ID, Date: dateStr, TimeSlot: "10am",
			},
			code: "invalid_slot",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(context.Background(), tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "want %s, got %v", tc.code, err)
		})
	}
}

func TestConfirmFlow(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	})
	require.NoError(t, err)

	confirmed, err := f.confirm.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmada", confirmed.Status)

	// A second confirm is an invalid transition.
	_, err = f.confirm.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestConfirmByToken(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	})
	require.NoError(t, err)

	confirmed, err := f.confirm.ExecuteByToken(context.Background(), ap.ConfirmationToken)
	require.NoError(t, err)
	assert.Equal(t, "confirmada", confirmed.Status)

	// Clicking the link twice reports the current state instead of failing.
	again, err := f.confirm.ExecuteByToken(context.Background(), ap.ConfirmationToken)
	assert.True(t, httperr.IsBusiness(err, "already_processed"))
	require.NotNil(t, again)
	assert.Equal(t, "confirmada", again.Status)

	_, err = f.confirm.ExecuteByToken(context.Background(), "no-such-token")
	assert.True(t, httperr.IsBusiness(err, "token_not_found"))
}

func TestCompleteCreatesSingleSale(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 750)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	})
	require.NoError(t, err)

	// Completion straight from pending covers the walk-in path.
	done, err := f.complete.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completada", done.Status)

	var sales []models.Sale
	require.NoError(t, f.db.Where("appointment_id = ?", ap.ID).Find(&sales).Error)
	require.Len(t, sales, 1)
	assert.Equal(t, 750.0, sales[0].Amount)
	assert.Equal(t, emp.ID, sales[0].EmployeeID)

	_, err = f.complete.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestCancelCompletedReversesSale(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	})
	require.NoError(t, err)

	_, err = f.complete.Execute(context.Background(), ap.ID)
	require.NoError(t, err)

	cancelled, err := f.cancel.Execute(context.Background(), ap.ID, "cliente no vino en realidad")
	require.NoError(t, err)
	assert.Equal(t, "cancelada", cancelled.Status)
	assert.Equal(t, "cliente no vino en realidad", cancelled.CancellationReason)

	var count int64
	require.NoError(t, f.db.Model(&models.Sale{}).
		Where("appointment_id = ?", ap.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCancelByTokenOnlyWhilePending(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	})
	require.NoError(t, err)

	_, err = f.confirm.Execute(context.Background(), ap.ID)
	require.NoError(t, err)

	// Once confirmed, the client link can no longer withdraw it.
	_, err = f.cancel.ExecuteByToken(context.Background(), ap.ConfirmationToken, "")
	assert.True(t, httperr.IsBusiness(err, "already_processed"))
}

func TestCancelFreesSlotForRebooking(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	in := CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	}

	ap, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = f.cancel.Execute(context.Background(), ap.ID, "")
	require.NoError(t, err)

	in.ClientName = "Pedro"
	_, err = f.create.Execute(context.Background(), in)
	require.NoError(t, err)
}

func TestReactivate(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	ap, err := f.create.Execute(context.Background(), CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	})
	require.NoError(t, err)

	_, err = f.cancel.Execute(context.Background(), ap.ID, "equivocación")
	require.NoError(t, err)

	restored, err := f.reactivate.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), restored.Status)
	assert.Empty(t, restored.CancellationReason)

	// Only cancelled appointments can be reactivated.
	_, err = f.reactivate.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestReactivateRebookedSlotConflicts(t *testing.T) {
	f := newFixture(t)
	emp := f.seedEmployee(t, "Lucas")
	svc := f.seedService(t, "Corte", 500)
	f.seedFullWeek(t, emp.ID)
	_, dateStr := tomorrow()

	in := CreateInput{
		ClientName: "Juan", ServiceID: svc.ID, EmployeeID: emp.ID,
		Date: dateStr, TimeSlot: "10:00:00",
	}

	ap, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = f.cancel.Execute(context.Background(), ap.ID, "")
	require.NoError(t, err)

	in.ClientName = "Pedro"
	_, err = f.create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = f.reactivate.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}
