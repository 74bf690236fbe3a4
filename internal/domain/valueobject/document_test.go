package valueobject_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

func TestDocuments_ApplyLeavesOmittedSlots(t *testing.T) {
	current := valueobject.Documents{
		ProfilePhoto: "/uploads/1-old.png",
		CNICFront:    "/uploads/1-front.png",
		SalarySheet:  "/uploads/1-salary.pdf",
	}

	var update valueobject.DocumentUpdate
	assert.True(t, update.IsEmpty())
	assert.True(t, update.Set(valueobject.DocumentProfilePhoto, "/uploads/2-new.png"))
	assert.True(t, update.Set(valueobject.DocumentCNICBack, "/uploads/2-back.png"))
	assert.False(t, update.Set(valueobject.DocumentKind("passport"), "/uploads/x"))
	assert.False(t, update.IsEmpty())

	next := current.Apply(update)

	assert.Equal(t, "/uploads/2-new.png", next.ProfilePhoto)
	assert.Equal(t, "/uploads/1-front.png", next.CNICFront)
	assert.Equal(t, "/uploads/2-back.png", next.CNICBack)
	assert.Equal(t, "/uploads/1-salary.pdf", next.SalarySheet)
	assert.Empty(t, next.Statement)
	assert.Equal(t, "/uploads/1-old.png", current.ProfilePhoto, "receiver must not change")
}

func TestAppointment_Apply(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	slot := "10:30 AM"
	office := "Bahadurabad, Karachi"

	first := valueobject.Appointment{}.Apply(valueobject.AppointmentUpdate{
		Date:           &day,
		Time:           &slot,
		OfficeLocation: &office,
	})
	assert.Equal(t, day, *first.Date)
	assert.Equal(t, slot, first.Time)

	later := "2:00 PM"
	second := first.Apply(valueobject.AppointmentUpdate{Time: &later})
	assert.Equal(t, day, *second.Date)
	assert.Equal(t, later, second.Time)
	assert.Equal(t, office, second.OfficeLocation)
}
