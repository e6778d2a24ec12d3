package domain

import (
	"errors"
	"fmt"
	"time"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// User errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDeleted       = errors.New("account has been deleted")
	ErrInvalidBlockDuration = errors.New("block duration must be between 1 and 3 days")
)

// Application errors
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrActiveApplicationExists  = errors.New("user already has an active application")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
)

// BlockedError is returned by authentication while a block window is open.
// It carries the data the presentation layer shows to the user.
type BlockedError struct {
	Until  time.Time
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("account blocked until %s (reason: %s)", e.Until.Format(time.RFC3339), e.Reason)
}
