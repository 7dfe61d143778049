package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff not found")
	ErrEmailExists   = errors.New("email already registered in this venue")
	ErrStaffInactive = errors.New("staff account is inactive")
)
