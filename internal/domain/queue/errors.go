package queue

import "errors"

var (
	ErrTicketNotFound         = errors.New("queue ticket not found")
	ErrTicketAlreadyFinalized = errors.New("queue ticket already seated, cancelled or expired")
)
