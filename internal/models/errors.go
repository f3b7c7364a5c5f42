package models

import "errors"

var (
	ErrComplaintNotFound  = errors.New("models: complaint not found")
	ErrBlobNotFound       = errors.New("models: stored file not found")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
)
