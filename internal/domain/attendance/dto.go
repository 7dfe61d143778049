package attendance

import (
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID        string  `json:"id"`
	StaffID   string  `json:"staff_id"`
	StaffName *string `json:"staff_name,omitempty"`
	WorkDate  string  `json:"work_date"`
	ClockIn   *string `json:"clock_in,omitempty"`
	ClockOut  *string `json:"clock_out,omitempty"`
	Open      bool    `json:"open"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID,
		StaffID:   a.StaffID,
		StaffName: a.StaffName,
		WorkDate:  a.WorkDate,
		Open:      a.IsOpen(),
	}
	if a.ClockIn != nil {
		str := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &str
	}
	if a.ClockOut != nil {
		str := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &str
	}
	return resp
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

type AttendanceFilter struct {
	StaffID   string
	DateFrom  string
	DateTo    string
	Page      int
	Limit     int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.DateFrom != "" {
		if _, ok := validator.IsValidDate(f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.DateTo != "" {
		if _, ok := validator.IsValidDate(f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID       string
	ClockIn  *string `json:"clock_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
