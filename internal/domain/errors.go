package domain

import "errors"

var (
	ErrNotFound   = errors.New("resource not found")
	ErrInvalidURL = errors.New("invalid video url")
)
