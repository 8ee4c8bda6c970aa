package schedule

import (
	"errors"
	"fmt"

	"slotbook/models"
)

// Error codes for reservation validation and remote-store failures.
const (
	CodeMissingField = "missingField"
	CodeNotFound     = "notFound"
	CodeSlotTaken    = "slotAlreadyBooked"
	CodeForbidden    = "forbidden"
	CodeConnection   = "connectionError"
)

// Error is a typed scheduling error. SlotTaken errors carry the conflicting
// reservation so callers can show who holds the slot.
type Error struct {
	Code     string
	Message  string
	Conflict *models.Reservation
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewMissingFieldError(field string) error {
	return &Error{Code: CodeMissingField, Message: fmt.Sprintf("required field %q is missing", field)}
}

func NewNotFoundError(what, id string) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %q not found", what, id)}
}

func NewSlotTakenError(conflict *models.Reservation) error {
	return &Error{
		Code:     CodeSlotTaken,
		Message:  "slot is already booked for this date and track",
		Conflict: conflict,
	}
}

func NewForbiddenError(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NewConnectionError(err error) error {
	return &Error{Code: CodeConnection, Message: fmt.Sprintf("remote store unavailable: %v", err)}
}

// ErrCode extracts the schedule error code, or "" for foreign errors.
func ErrCode(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ConflictOf returns the conflicting reservation attached to a SlotTaken
// error, if any.
func ConflictOf(err error) *models.Reservation {
	var se *Error
	if errors.As(err, &se) {
		return se.Conflict
	}
	return nil
}
