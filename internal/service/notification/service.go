package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apnadr/hospital-api/internal/email"
	"github.com/apnadr/hospital-api/internal/model"
)

const (
	maxRetries  = 3
	retryDelay  = 5 * time.Second
	sendTimeout = 30 * time.Second
)

// Service delivers booking confirmations. Delivery is best-effort: failures
// are logged, never surfaced to the booking caller.
type Service interface {
	SendBookingConfirmation(appointment *model.Appointment)
}

type service struct {
	sender email.Sender
}

func NewService(sender email.Sender) Service {
	return &service{sender: sender}
}

// SendBookingConfirmation dispatches the confirmation asynchronously and
// returns immediately. Appointments without an email address are skipped.
func (s *service) SendBookingConfirmation(appointment *model.Appointment) {
	if appointment.PatientEmail == "" {
		return
	}

	apt := *appointment
	go s.deliver(&apt)
}

func (s *service) deliver(apt *model.Appointment) {
	subject := "Appointment Confirmation - ApnaDr"
	body := confirmationBody(apt)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err = s.sender.Send(ctx, apt.PatientEmail, subject, body)
		cancel()

		if err == nil {
			log.Info().
				Str("appointment", apt.Code).
				Str("recipient", apt.PatientEmail).
				Msg("confirmation email sent")
			return
		}

		log.Warn().
			Err(err).
			Str("appointment", apt.Code).
			Int("attempt", attempt).
			Msg("confirmation email attempt failed")

		if attempt < maxRetries {
			time.Sleep(retryDelay * time.Duration(attempt))
		}
	}

	log.Error().
		Err(err).
		Str("appointment", apt.Code).
		Msg("confirmation email delivery abandoned")
}

func confirmationBody(apt *model.Appointment) string {
	symptoms := ""
	if apt.Symptoms != "" {
		symptoms = fmt.Sprintf("<p><strong>Symptoms:</strong> %s</p>", apt.Symptoms)
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Appointment Confirmation</h2>
			<p>Dear %s,</p>
			<p>Your appointment has been successfully booked with ApnaDr.</p>
			<div style="background: #f8f9fa; padding: 20px; border-radius: 10px;">
				<h3>Appointment Details:</h3>
				<p><strong>Appointment ID:</strong> %s</p>
				<p><strong>Hospital:</strong> %s</p>
				<p><strong>Doctor:</strong> %s (%s)</p>
				<p><strong>Date:</strong> %s</p>
				<p><strong>Time:</strong> %s</p>
				%s
			</div>
			<p>Please arrive 15 minutes before your scheduled time.</p>
			<p>If you need to cancel or reschedule, please contact us immediately.</p>
			<p>Best regards,<br>ApnaDr Team</p>
		</div>`,
		apt.PatientName,
		apt.Code,
		apt.HospitalName,
		apt.DoctorName,
		apt.DoctorSpecialization,
		apt.AppointmentDate,
		apt.AppointmentTime,
		symptoms,
	)
}
