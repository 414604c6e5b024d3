package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/apnadr/hospital-api/pkg/geo"
)

type Hospital struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	City       string    `db:"city" json:"city"`
	Address    string    `db:"address" json:"address"`
	Phone      string    `db:"phone" json:"phone"`
	Email      string    `db:"email" json:"email,omitempty"`
	Longitude  float64   `db:"longitude" json:"longitude"`
	Latitude   float64   `db:"latitude" json:"latitude"`
	Facilities []string  `db:"-" json:"facilities"`
	Rating     float64   `db:"rating" json:"rating"`
	Emergency  bool      `db:"emergency" json:"emergency"`
	Type       string    `db:"type" json:"type,omitempty"`
	Image      string    `db:"image" json:"image,omitempty"`
	Doctors    []Doctor  `db:"-" json:"doctors,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Location returns the hospital coordinate as a geo point.
func (h *Hospital) Location() geo.Point {
	return geo.Point{Longitude: h.Longitude, Latitude: h.Latitude}
}

// Doctor is scoped to one hospital; its numeric ID is unique only within the
// owning hospital and is never referenced across hospitals.
type Doctor struct {
	HospitalID     uuid.UUID `db:"hospital_id" json:"-"`
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Experience     int       `db:"experience" json:"experience"`
	Available      bool      `db:"available" json:"available"`
}

// HospitalWithDistance decorates a hospital with its distance from a query
// point for nearby listings.
type HospitalWithDistance struct {
	Hospital
	DistanceKm float64 `json:"distance_km"`
}

// HospitalFilter is the text filter for directory lookups. Matching is
// case-insensitive substring on city and/or address.
type HospitalFilter struct {
	City string
	Area string
}

func (f HospitalFilter) Empty() bool {
	return f.City == "" && f.Area == ""
}
