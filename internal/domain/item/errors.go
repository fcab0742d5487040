package item

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidKind      = errors.New("invalid item kind")
	ErrAlreadyProcessed = errors.New("item already processed")
)
