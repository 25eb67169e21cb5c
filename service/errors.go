package service

import "errors"

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownTier       = errors.New("unknown tier")
	ErrUnknownAddOn      = errors.New("unknown add-on")
	ErrParentNotSelected = errors.New("parent category not selected")
	ErrNotReady          = errors.New("applicant details not validated")
	ErrEmptySelection    = errors.New("no plan selected")
	ErrValidation        = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("no session")

	ErrInvalidUser  = errors.New("invalid user")
	ErrInvalidQuote = errors.New("invalid quote")
)
