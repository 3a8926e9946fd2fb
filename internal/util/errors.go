package util

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoUpdateFields     = errors.New("no fields provided for update")

	ErrCourseNotFound     = errors.New("course not found in catalog")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("course enrollment not found")
	ErrSlugExists         = errors.New("course with this slug already exists")
	ErrSlugImmutable      = errors.New("cannot change course slug")
	ErrProgressRange      = errors.New("progress must be between 0 and 100")

	ErrTooFewOptions      = errors.New("at least 2 options are required")
	ErrAnswerNotInOptions = errors.New("correct answer must be one of the options")
)
