package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/apnadr/hospital-api/internal/model"
	"github.com/apnadr/hospital-api/internal/repository"
	"github.com/apnadr/hospital-api/internal/service/notification"
	apperrors "github.com/apnadr/hospital-api/pkg/errors"
	"github.com/apnadr/hospital-api/pkg/validator"
)

type Service struct {
	repo         repository.AppointmentRepository
	hospitalRepo repository.HospitalRepository
	notifSvc     notification.Service
	now          func() time.Time
}

func NewService(repo repository.AppointmentRepository, hospitalRepo repository.HospitalRepository, notifSvc notification.Service) *Service {
	return &Service{
		repo:         repo,
		hospitalRepo: hospitalRepo,
		notifSvc:     notifSvc,
		now:          time.Now,
	}
}

// Book validates the request, resolves hospital and doctor, and inserts the
// appointment. Slot exclusivity is not checked up front: the insert races on
// the storage-level unique slot index, so under concurrent requests for the
// same (hospital, doctor, date, time) tuple exactly one insert wins and every
// loser observes a Conflict error.
func (s *Service) Book(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	hospitalID, err := uuid.Parse(req.HospitalID)
	if err != nil {
		return nil, apperrors.Validation("hospitalId", "must be a valid hospital id")
	}

	hospital, err := s.hospitalRepo.Get(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.hospitalRepo.GetDoctor(ctx, hospitalID, req.DoctorID)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	apt := &model.Appointment{
		ID:                   id,
		Code:                 appointmentCode(id),
		PatientName:          strings.TrimSpace(req.PatientName),
		PatientPhone:         req.PatientPhone,
		PatientEmail:         strings.ToLower(strings.TrimSpace(req.PatientEmail)),
		PatientGender:        req.PatientGender,
		HospitalID:           hospitalID,
		DoctorID:             doctor.ID,
		HospitalName:         hospital.Name,
		DoctorName:           doctor.Name,
		DoctorSpecialization: doctor.Specialization,
		AppointmentDate:      req.AppointmentDate,
		AppointmentTime:      req.AppointmentTime,
		Symptoms:             req.Symptoms,
		Status:               model.AppointmentStatusConfirmed,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if apperrors.IsCode(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	log.Info().
		Str("appointment", apt.Code).
		Str("hospital", apt.HospitalName).
		Str("doctor", apt.DoctorName).
		Str("slot", apt.AppointmentDate+" "+apt.AppointmentTime).
		Msg("appointment booked")

	// Best-effort; a delivery failure never fails the booking.
	s.notifSvc.SendBookingConfirmation(apt)

	return apt, nil
}

// Cancel marks the appointment cancelled and records the timestamp. The row is
// never deleted, which frees the slot for re-booking while keeping history.
// Cancelling an already-cancelled appointment is an idempotent no-op.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Status == model.AppointmentStatusCancelled {
		return apt, nil
	}

	now := s.now()
	apt.Status = model.AppointmentStatusCancelled
	apt.CancelledAt = &now

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	log.Info().Str("appointment", apt.Code).Msg("appointment cancelled")
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) validateRequest(req *model.BookAppointmentRequest) error {
	if err := validator.Required("patientName", req.PatientName); err != nil {
		return err
	}
	if err := validator.Phone("patientPhone", req.PatientPhone); err != nil {
		return err
	}
	if err := validator.Email("patientEmail", req.PatientEmail); err != nil {
		return err
	}
	if err := validator.Gender("patientGender", req.PatientGender); err != nil {
		return err
	}
	if err := validator.Required("appointmentTime", req.AppointmentTime); err != nil {
		return err
	}
	if _, err := validator.FutureDate("appointmentDate", req.AppointmentDate, s.now()); err != nil {
		return err
	}
	return nil
}

// appointmentCode derives the short human-readable booking reference handed
// to patients, e.g. APT3F9A01.
func appointmentCode(id uuid.UUID) string {
	return "APT" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
}
