package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Slip is the appointment slip an applicant brings to the office.
type Slip struct {
	TokenNumber     string
	ApplicantName   string
	CNIC            string
	LoanAmount      decimal.Decimal
	Category        string
	Subcategory     string
	AppointmentDate *time.Time
	AppointmentTime string
	OfficeLocation  string
	QRCode          string

	// RequestUpdatedAt is the UpdatedAt of the request the slip was rendered from.
	RequestUpdatedAt time.Time
}

// RenderedFrom reports whether the slip still reflects r.
func (s Slip) RenderedFrom(r LoanRequest) bool {
	return s.TokenNumber == r.TokenNumber().String() && s.RequestUpdatedAt.Equal(r.UpdatedAt())
}

// SlipQRPayload is the JSON encoded into the slip's QR code.
type SlipQRPayload struct {
	TokenNumber string          `json:"tokenNumber"`
	Name        string          `json:"name"`
	CNIC        string          `json:"cnic"`
	LoanAmount  decimal.Decimal `json:"loanAmount"`
	Category    string          `json:"category"`
}

// Bytes returns the JSON form of the payload.
func (p SlipQRPayload) Bytes() ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal slip payload: %w", err)
	}
	return b, nil
}

// NewSlip assembles a slip without its QR code. The request must carry a token.
func NewSlip(r LoanRequest, applicant Applicant) (Slip, SlipQRPayload, error) {
	if !r.HasToken() {
		return Slip{}, SlipQRPayload{}, ErrTokenNotAssigned
	}
	appt := r.Appointment()
	slip := Slip{
		TokenNumber:     r.TokenNumber().String(),
		ApplicantName:   applicant.Name,
		CNIC:            applicant.CNIC,
		LoanAmount:      r.LoanAmount(),
		Category:        r.Category(),
		Subcategory:     r.Subcategory(),
		AppointmentDate: appt.Date,
		AppointmentTime: appt.Time,
		OfficeLocation:  appt.OfficeLocation,

		RequestUpdatedAt: r.UpdatedAt(),
	}
	payload := SlipQRPayload{
		TokenNumber: slip.TokenNumber,
		Name:        applicant.Name,
		CNIC:        applicant.CNIC,
		LoanAmount:  slip.LoanAmount,
		Category:    slip.Category,
	}
	return slip, payload, nil
}
