package valueobject

import "time"

// Appointment is the in-person review slot booked by an administrator.
type Appointment struct {
	Date           *time.Time
	Time           string
	OfficeLocation string
}

// AppointmentUpdate carries only the fields an administrator supplied.
type AppointmentUpdate struct {
	Date           *time.Time
	Time           *string
	OfficeLocation *string
}

// Apply returns a with the provided fields replaced.
func (a Appointment) Apply(u AppointmentUpdate) Appointment {
	next := a
	if u.Date != nil {
		d := *u.Date
		next.Date = &d
	}
	if u.Time != nil {
		next.Time = *u.Time
	}
	if u.OfficeLocation != nil {
		next.OfficeLocation = *u.OfficeLocation
	}
	return next
}

// Address is the postal address of an applicant.
type Address struct {
	Street  string
	City    string
	Country string
	ZipCode string
}
