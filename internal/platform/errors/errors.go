package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCorruptStore = errors.New("session store is corrupt")
	ErrDataDir      = errors.New("cannot resolve data directory")
)
