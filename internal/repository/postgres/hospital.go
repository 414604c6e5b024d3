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

// hospitalRow carries the pq array column; facilities live in a TEXT[] so a
// directory fetch stays a single query.
type hospitalRow struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	City       string         `db:"city"`
	Address    string         `db:"address"`
	Phone      string         `db:"phone"`
	Email      string         `db:"email"`
	Longitude  float64        `db:"longitude"`
	Latitude   float64        `db:"latitude"`
	Facilities pq.StringArray `db:"facilities"`
	Rating     float64        `db:"rating"`
	Emergency  bool           `db:"emergency"`
	Type       string         `db:"type"`
	Image      string         `db:"image"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r hospitalRow) toModel() *model.Hospital {
	return &model.Hospital{
		ID:         r.ID,
		Name:       r.Name,
		City:       r.City,
		Address:    r.Address,
		Phone:      r.Phone,
		Email:      r.Email,
		Longitude:  r.Longitude,
		Latitude:   r.Latitude,
		Facilities: r.Facilities,
		Rating:     r.Rating,
		Emergency:  r.Emergency,
		Type:       r.Type,
		Image:      r.Image,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

const hospitalColumns = `
	id, name, city, address, phone, email,
	longitude, latitude, facilities, rating,
	emergency, type, image, created_at, updated_at
`

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (
			id, name, city, address, phone, email,
			longitude, latitude, facilities, rating,
			emergency, type, image, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.City,
		hospital.Address,
		hospital.Phone,
		hospital.Email,
		hospital.Longitude,
		hospital.Latitude,
		pq.StringArray(hospital.Facilities),
		hospital.Rating,
		hospital.Emergency,
		hospital.Type,
		hospital.Image,
		hospital.CreatedAt,
		hospital.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}

	for _, d := range hospital.Doctors {
		if err := r.createDoctor(ctx, hospital.ID, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *hospitalRepository) createDoctor(ctx context.Context, hospitalID uuid.UUID, doctor model.Doctor) error {
	query := `
		INSERT INTO doctors (hospital_id, id, name, specialization, experience, available)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		hospitalID,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.Experience,
		doctor.Available,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE id = $1`

	var row hospitalRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("hospital", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}

	hospital := row.toModel()
	doctors, err := r.ListDoctors(ctx, id)
	if err != nil {
		return nil, err
	}
	hospital.Doctors = doctors
	return hospital, nil
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals ORDER BY name ASC`

	var rows []hospitalRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return toModels(rows), nil
}

func (r *hospitalRepository) Search(ctx context.Context, filter model.HospitalFilter) ([]*model.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.City != "" {
		query += fmt.Sprintf(" AND city ILIKE $%d", argCount)
		args = append(args, "%"+filter.City+"%")
		argCount++
	}

	if filter.Area != "" {
		query += fmt.Sprintf(" AND address ILIKE $%d", argCount)
		args = append(args, "%"+filter.Area+"%")
		argCount++
	}

	query += " ORDER BY name ASC"

	var rows []hospitalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}
	return toModels(rows), nil
}

func (r *hospitalRepository) ListEmergency(ctx context.Context, limit int) ([]*model.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE emergency = TRUE ORDER BY name ASC`
	args := []interface{}{}

	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var rows []hospitalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list emergency hospitals: %w", err)
	}
	return toModels(rows), nil
}

func (r *hospitalRepository) ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]model.Doctor, error) {
	query := `
		SELECT hospital_id, id, name, specialization, experience, available
		FROM doctors
		WHERE hospital_id = $1
		ORDER BY id ASC
	`
	var doctors []model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *hospitalRepository) GetDoctor(ctx context.Context, hospitalID uuid.UUID, doctorID int) (*model.Doctor, error) {
	query := `
		SELECT hospital_id, id, name, specialization, experience, available
		FROM doctors
		WHERE hospital_id = $1 AND id = $2
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, hospitalID, doctorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *hospitalRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM hospitals`); err != nil {
		return 0, fmt.Errorf("failed to count hospitals: %w", err)
	}
	return count, nil
}

func toModels(rows []hospitalRow) []*model.Hospital {
	hospitals := make([]*model.Hospital, 0, len(rows))
	for _, row := range rows {
		hospitals = append(hospitals, row.toModel())
	}
	return hospitals
}
