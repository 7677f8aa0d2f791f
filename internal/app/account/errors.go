package account

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmailTaken    = errors.New("there is an account with that email already")
	ErrNotFound      = errors.New("account not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrCodeNotFound  = errors.New("verification not found")
)
