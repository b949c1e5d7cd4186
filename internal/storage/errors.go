package storage

import "errors"

var (
	ErrInvalidKey      = errors.New("invalid key")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("key not found")
)
