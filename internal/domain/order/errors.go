package order

import "errors"

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyClosed = errors.New("session is already closed")
	ErrTableOccupied        = errors.New("table already has an open session")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrLineItemNotFound     = errors.New("line item not found")
)
