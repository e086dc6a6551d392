package reports

import "errors"

var (
	ErrUnauthorized  = errors.New("not authorised")
	ErrPersistence   = errors.New("report persistence failed")
	ErrInvalidOrder  = errors.New("invalid report order")
	// ErrInvalidFiling means the description held nothing but markup.
	ErrInvalidFiling = errors.New("reason description is empty after sanitizing")
)
