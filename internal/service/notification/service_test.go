package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnadr/hospital-api/internal/model"
)

type capturedMail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent chan capturedMail
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	f.sent <- capturedMail{to: to, subject: subject, body: body}
	return nil
}

func testAppointment() *model.Appointment {
	return &model.Appointment{
		Code:                 "APT3F9A01",
		PatientName:          "Ravi Teja",
		PatientEmail:         "ravi.teja@example.com",
		HospitalName:         "Osmania General Hospital",
		DoctorName:           "Dr. Rajesh Kumar",
		DoctorSpecialization: "General Medicine",
		AppointmentDate:      "2026-03-15",
		AppointmentTime:      "10:30",
		Symptoms:             "fever",
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	sender := &fakeSender{sent: make(chan capturedMail, 1)}
	svc := NewService(sender)

	svc.SendBookingConfirmation(testAppointment())

	select {
	case mail := <-sender.sent:
		assert.Equal(t, "ravi.teja@example.com", mail.to)
		assert.Equal(t, "Appointment Confirmation - ApnaDr", mail.subject)
		assert.Contains(t, mail.body, "APT3F9A01")
		assert.Contains(t, mail.body, "Osmania General Hospital")
		assert.Contains(t, mail.body, "Dr. Rajesh Kumar")
		assert.Contains(t, mail.body, "fever")
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email never sent")
	}
}

func TestSendBookingConfirmationNoEmail(t *testing.T) {
	sender := &fakeSender{sent: make(chan capturedMail, 1)}
	svc := NewService(sender)

	apt := testAppointment()
	apt.PatientEmail = ""
	svc.SendBookingConfirmation(apt)

	select {
	case <-sender.sent:
		t.Fatal("email sent despite missing address")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConfirmationBodyOmitsEmptySymptoms(t *testing.T) {
	apt := testAppointment()
	apt.Symptoms = ""

	body := confirmationBody(apt)
	require.NotEmpty(t, body)
	assert.False(t, strings.Contains(body, "Symptoms:"))
	assert.Contains(t, body, "Ravi Teja")
	assert.Contains(t, body, "2026-03-15")
}
