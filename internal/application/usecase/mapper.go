package usecase

import (
	"github.com/google/uuid"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
)

func toLoanRequestResponse(lr model.LoanRequest, applicant *model.Applicant, guarantors []model.Guarantor) dto.LoanRequestResponse {
	appt := lr.Appointment()
	docs := lr.Documents()
	resp := dto.LoanRequestResponse{
		ID:                 lr.ID(),
		ApplicantID:        lr.ApplicantID(),
		Category:           lr.Category(),
		Subcategory:        lr.Subcategory(),
		LoanAmount:         lr.LoanAmount(),
		LoanPeriod:         lr.TermMonths(),
		InitialDeposit:     lr.InitialDeposit(),
		MonthlyInstallment: lr.MonthlyInstallment(),
		Status:             lr.Status().String(),
		TokenNumber:        lr.TokenNumber().String(),
		AppointmentDate:    appt.Date,
		AppointmentTime:    appt.Time,
		OfficeLocation:     appt.OfficeLocation,
		Documents: dto.DocumentsResponse{
			ProfilePhoto: docs.ProfilePhoto,
			CNICFront:    docs.CNICFront,
			CNICBack:     docs.CNICBack,
			SalarySheet:  docs.SalarySheet,
			Statement:    docs.Statement,
		},
		GuarantorIDs:   lr.GuarantorIDs(),
		AdditionalInfo: lr.AdditionalInfo(),
		CreatedAt:      lr.CreatedAt(),
		UpdatedAt:      lr.UpdatedAt(),
	}
	if resp.GuarantorIDs == nil {
		resp.GuarantorIDs = []uuid.UUID{}
	}
	if applicant != nil {
		a := toApplicantResponse(*applicant)
		resp.Applicant = &a
	}
	for _, g := range guarantors {
		resp.Guarantors = append(resp.Guarantors, toGuarantorResponse(g))
	}
	return resp
}

func toApplicantResponse(a model.Applicant) dto.ApplicantResponse {
	return dto.ApplicantResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		CNIC:        a.CNIC,
		PhoneNumber: a.Phone,
		Address: dto.AddressResponse{
			Street:  a.Address.Street,
			City:    a.Address.City,
			Country: a.Address.Country,
			ZipCode: a.Address.ZipCode,
		},
	}
}

func toGuarantorResponse(g model.Guarantor) dto.GuarantorResponse {
	return dto.GuarantorResponse{
		ID:            g.ID(),
		LoanRequestID: g.LoanRequestID(),
		Name:          g.Name(),
		Email:         g.Email(),
		CNIC:          g.CNIC(),
		Location:      g.Location(),
		PhoneNumber:   g.Phone(),
		CreatedAt:     g.CreatedAt(),
	}
}

func toSlipResponse(s model.Slip) dto.SlipResponse {
	return dto.SlipResponse{
		TokenNumber:     s.TokenNumber,
		ApplicantName:   s.ApplicantName,
		CNIC:            s.CNIC,
		LoanAmount:      s.LoanAmount,
		Category:        s.Category,
		Subcategory:     s.Subcategory,
		AppointmentDate: s.AppointmentDate,
		AppointmentTime: s.AppointmentTime,
		OfficeLocation:  s.OfficeLocation,
		QRCode:          s.QRCode,
	}
}

func toCalculationResponse(c model.LoanCalculation) dto.LoanCalculationResponse {
	return dto.LoanCalculationResponse{
		TotalLoan:          c.TotalLoan,
		InitialDeposit:     c.InitialDeposit,
		RemainingAmount:    c.RemainingAmount,
		PeriodMonths:       c.PeriodMonths,
		MonthlyInstallment: c.MonthlyInstallment,
		TotalPayable:       c.TotalPayable,
	}
}
