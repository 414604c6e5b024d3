package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/apnadr/hospital-api/internal/repository"
)

type hospitalRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}
