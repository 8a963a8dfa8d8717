package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidTargetForRole = errors.New("invalid target for role")
	ErrDuplicateSwipe       = errors.New("already swiped on this target")
	ErrTargetNotFound       = errors.New("target not found")
	ErrTargetUnavailable    = errors.New("target no longer available")
	ErrMatchNotFound        = errors.New("match not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInternal             = errors.New("internal error")
)
