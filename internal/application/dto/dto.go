package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Caller identity
// ---------------------------------------------------------------------------

// Caller is the authenticated user on whose behalf a use case runs.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CalculateLoanRequest carries the inputs of a loan estimate.
type CalculateLoanRequest struct {
	Category       string          `json:"category" validate:"required"`
	LoanAmount     decimal.Decimal `json:"loanAmount"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	PeriodMonths   int             `json:"periodMonths" validate:"required,min=1"`
}

// CreateLoanRequestRequest carries a new loan application.
type CreateLoanRequestRequest struct {
	Category       string          `json:"category" validate:"required"`
	Subcategory    string          `json:"subcategory" validate:"required"`
	LoanAmount     decimal.Decimal `json:"loanAmount"`
	LoanPeriod     int             `json:"loanPeriod" validate:"required,min=1"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	AdditionalInfo string          `json:"additionalInfo" validate:"max=2000"`
}

// GuarantorInput is one guarantor as submitted by the applicant.
type GuarantorInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CNIC        string `json:"cnic" validate:"required"`
	Location    string `json:"location" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// AttachGuarantorsRequest carries the guarantor pair for a loan request. The
// count is checked by the use case so the caller sees the domain message.
type AttachGuarantorsRequest struct {
	Guarantors []GuarantorInput `json:"guarantors" validate:"dive"`
}

// UploadedFile is one file received for a document slot.
type UploadedFile struct {
	Field        string
	OriginalName string
	Content      io.Reader
}

// ListApplicationsRequest filters the administrative listing.
type ListApplicationsRequest struct {
	Status  string
	City    string
	Country string
}

// UpdateStatusRequest carries an administrative status overwrite.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignTokenRequest carries the optional appointment and status of an
// assignment. Dates are ISO-8601 calendar dates or RFC 3339 timestamps.
type AssignTokenRequest struct {
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	OfficeLocation  *string `json:"officeLocation"`
	Status          *string `json:"status"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanCategoryResponse is one catalog entry.
type LoanCategoryResponse struct {
	Name          string           `json:"name"`
	Subcategories []string         `json:"subcategories"`
	MaxAmount     *decimal.Decimal `json:"maxAmount"`
	PeriodYears   int              `json:"period"`
	MaxTermMonths int              `json:"maxTermMonths"`
}

// LoanCalculationResponse is the repayment breakdown.
type LoanCalculationResponse struct {
	TotalLoan          decimal.Decimal `json:"totalLoan"`
	InitialDeposit     decimal.Decimal `json:"initialDeposit"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	PeriodMonths       int             `json:"periodMonths"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	TotalPayable       decimal.Decimal `json:"totalPayable"`
}

// ApplicantResponse is the applicant summary attached to a request.
type ApplicantResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	CNIC        string          `json:"cnic"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Address     AddressResponse `json:"address"`
}

// AddressResponse is a postal address.
type AddressResponse struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// GuarantorResponse is one stored guarantor.
type GuarantorResponse struct {
	ID            uuid.UUID `json:"id"`
	LoanRequestID uuid.UUID `json:"loanRequestId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CNIC          string    `json:"cnic"`
	Location      string    `json:"location"`
	PhoneNumber   string    `json:"phoneNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DocumentsResponse lists the stored document references.
type DocumentsResponse struct {
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	CNICFront    string `json:"cnicFront,omitempty"`
	CNICBack     string `json:"cnicBack,omitempty"`
	SalarySheet  string `json:"salarySheet,omitempty"`
	Statement    string `json:"statement,omitempty"`
}

// LoanRequestResponse is the external representation of a loan request.
type LoanRequestResponse struct {
	ID                 uuid.UUID           `json:"id"`
	ApplicantID        uuid.UUID           `json:"applicantId"`
	Applicant          *ApplicantResponse  `json:"applicant,omitempty"`
	Category           string              `json:"category"`
	Subcategory        string              `json:"subcategory"`
	LoanAmount         decimal.Decimal     `json:"loanAmount"`
	LoanPeriod         int                 `json:"loanPeriod"`
	InitialDeposit     decimal.Decimal     `json:"initialDeposit"`
	MonthlyInstallment decimal.Decimal     `json:"monthlyInstallment"`
	Status             string              `json:"status"`
	TokenNumber        string              `json:"tokenNumber,omitempty"`
	AppointmentDate    *time.Time          `json:"appointmentDate,omitempty"`
	AppointmentTime    string              `json:"appointmentTime,omitempty"`
	OfficeLocation     string              `json:"officeLocation,omitempty"`
	Documents          DocumentsResponse   `json:"documents"`
	GuarantorIDs       []uuid.UUID         `json:"guarantorIds"`
	Guarantors         []GuarantorResponse `json:"guarantors,omitempty"`
	AdditionalInfo     string              `json:"additionalInfo,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// SlipResponse is the appointment slip with its QR code.
type SlipResponse struct {
	TokenNumber     string          `json:"tokenNumber"`
	ApplicantName   string          `json:"applicantName"`
	CNIC            string          `json:"cnic"`
	LoanAmount      decimal.Decimal `json:"loanAmount"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory"`
	AppointmentDate *time.Time      `json:"appointmentDate,omitempty"`
	AppointmentTime string          `json:"appointmentTime,omitempty"`
	OfficeLocation  string          `json:"officeLocation,omitempty"`
	QRCode          string          `json:"qrCode"`
}

// ApplicationStatsResponse is the admin dashboard summary.
type ApplicationStatsResponse struct {
	TotalApplications       int             `json:"totalApplications"`
	PendingApplications     int             `json:"pendingApplications"`
	UnderReviewApplications int             `json:"underReviewApplications"`
	ApprovedApplications    int             `json:"approvedApplications"`
	RejectedApplications    int             `json:"rejectedApplications"`
	CompletedApplications   int             `json:"completedApplications"`
	TotalLoanAmount         decimal.Decimal `json:"totalLoanAmount"`
}
