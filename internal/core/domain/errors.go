package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrInvalidInput = errors.New("invalid input")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")

	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")

	ErrLeaveNotFound      = errors.New("leave request not found")
	ErrInvalidLeaveStatus = errors.New("invalid leave status")
)
