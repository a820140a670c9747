package appointment

import "github.com/highburybarber/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmada"
	StatusCompleted Status = "completada"
	StatusCancelled Status = "cancelada"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transition guards
// ===============================

// CanConfirm: only a pending appointment can be confirmed.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanComplete follows the administrative path: completion is accepted from
// pending or confirmed, so a walk-in that was never confirmed can still be
// closed out at the counter.
func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanCancel: anything but an already-cancelled appointment can be
// cancelled. Cancelling a completed one reverses its sale.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanReactivate undoes a mistaken cancellation, admin only.
func CanReactivate(current Status) error {
	if current != StatusCancelled {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
