// internal/services/errors.go
package services

import "errors"

var (
	ErrEmptyQuery      = errors.New("search query is empty")
	ErrEmptyMessage    = errors.New("chat message is empty")
	ErrProductNotFound = errors.New("product not found")
	ErrCartItemMissing = errors.New("product is not in the cart")
	ErrInvalidImage    = errors.New("invalid image file")
	ErrImageTooLarge   = errors.New("image exceeds the upload limit")
	ErrSuperseded      = errors.New("superseded by a newer request")
	ErrSessionNotFound = errors.New("session not found")
)
