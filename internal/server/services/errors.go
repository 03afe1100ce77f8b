package services

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStudentNotFound    = errors.New("student not found")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrOTPNotVerified     = errors.New("otp not verified")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrInvalidMarks       = errors.New("marks must not be negative")
	ErrForbidden          = errors.New("forbidden")
)
