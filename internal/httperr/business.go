package httperr

import (
	"errors"
	"net/http"
	"strings"
)

// BusinessError is an expected domain failure identified by a stable code.
// Codes are wire-visible and consumed by the frontend.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// Status maps the code to its response status: *_not_found renders 404,
// state-machine rejections render 409, everything else is a plain 400.
// slot_conflict is a 400; the booking form handles it like any other
// rejected submission.
func (e BusinessError) Status() int {
	switch {
	case strings.HasSuffix(e.Code, "_not_found"):
		return http.StatusNotFound
	case e.Code == "already_processed", e.Code == "invalid_transition":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
