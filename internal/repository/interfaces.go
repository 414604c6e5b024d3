package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/apnadr/hospital-api/internal/model"
)

type HospitalRepository interface {
	Create(ctx context.Context, hospital *model.Hospital) error
	Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
	List(ctx context.Context) ([]*model.Hospital, error)
	Search(ctx context.Context, filter model.HospitalFilter) ([]*model.Hospital, error)
	ListEmergency(ctx context.Context, limit int) ([]*model.Hospital, error)
	ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]model.Doctor, error)
	GetDoctor(ctx context.Context, hospitalID uuid.UUID, doctorID int) (*model.Doctor, error)
	Count(ctx context.Context) (int, error)
}

type AppointmentRepository interface {
	// Create inserts the appointment. When another active appointment already
	// holds the same (hospital, doctor, date, time) slot the storage-level
	// uniqueness constraint fires and Create returns a Conflict error.
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) error
}
