package gallery

import "errors"

var (
	ErrNotFound = errors.New("gallery image not found")
	ErrNotOwner = errors.New("gallery image belongs to another user")
)
