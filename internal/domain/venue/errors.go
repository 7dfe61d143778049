package venue

import "errors"

var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrVenueNameExists = errors.New("venue name already exists")
)
