package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/apnadr/hospital-api/internal/model"
	apperrors "github.com/apnadr/hospital-api/pkg/errors"
)

// uniqueViolation is the Postgres error code raised when the partial unique
// index on (hospital_id, doctor_id, appointment_date, appointment_time)
// rejects a second active appointment for the same slot.
const uniqueViolation = "23505"

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, code, patient_name, patient_phone, patient_email, patient_gender,
			hospital_id, doctor_id, hospital_name, doctor_name, doctor_specialization,
			appointment_date, appointment_time, symptoms, status, cancelled_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.Code,
		appointment.PatientName,
		appointment.PatientPhone,
		appointment.PatientEmail,
		appointment.PatientGender,
		appointment.HospitalID,
		appointment.DoctorID,
		appointment.HospitalName,
		appointment.DoctorName,
		appointment.DoctorSpecialization,
		appointment.AppointmentDate,
		appointment.AppointmentTime,
		appointment.Symptoms,
		appointment.Status,
		appointment.CancelledAt,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.Conflict("this time slot is already booked, please choose another time", err)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, code, patient_name, patient_phone, patient_email, patient_gender,
			   hospital_id, doctor_id, hospital_name, doctor_name, doctor_specialization,
			   appointment_date, appointment_time, symptoms, status, cancelled_at,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, code, patient_name, patient_phone, patient_email, patient_gender,
			   hospital_id, doctor_id, hospital_name, doctor_name, doctor_specialization,
			   appointment_date, appointment_time, symptoms, status, cancelled_at,
			   created_at, updated_at
		FROM appointments
		ORDER BY created_at DESC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, cancelled_at = $2, updated_at = $3
		WHERE id = $4
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Status,
		appointment.CancelledAt,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	return nil
}
