package restaurant

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("restaurant not found")
	ErrNotOwner         = errors.New("you don't own this restaurant")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCreateFailed     = errors.New("could not create restaurant")
)
