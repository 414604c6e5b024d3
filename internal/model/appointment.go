package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment is created exactly once per successful booking and is immutable
// except for the single cancel transition. Hospital and doctor display fields
// are snapshots frozen at booking time, not live links.
type Appointment struct {
	ID                   uuid.UUID         `db:"id" json:"id"`
	Code                 string            `db:"code" json:"appointmentId"`
	PatientName          string            `db:"patient_name" json:"patientName"`
	PatientPhone         string            `db:"patient_phone" json:"patientPhone"`
	PatientEmail         string            `db:"patient_email" json:"patientEmail,omitempty"`
	PatientGender        string            `db:"patient_gender" json:"patientGender"`
	HospitalID           uuid.UUID         `db:"hospital_id" json:"hospitalId"`
	DoctorID             int               `db:"doctor_id" json:"doctorId"`
	HospitalName         string            `db:"hospital_name" json:"hospitalName"`
	DoctorName           string            `db:"doctor_name" json:"doctorName"`
	DoctorSpecialization string            `db:"doctor_specialization" json:"doctorSpecialization"`
	AppointmentDate      string            `db:"appointment_date" json:"appointmentDate"`
	AppointmentTime      string            `db:"appointment_time" json:"appointmentTime"`
	Symptoms             string            `db:"symptoms" json:"symptoms,omitempty"`
	Status               AppointmentStatus `db:"status" json:"status"`
	CancelledAt          *time.Time        `db:"cancelled_at" json:"cancelledAt"`
	CreatedAt            time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time         `db:"updated_at" json:"updated_at"`
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status == AppointmentStatusConfirmed
}

type BookAppointmentRequest struct {
	PatientName     string `json:"patientName"`
	PatientPhone    string `json:"patientPhone"`
	PatientEmail    string `json:"patientEmail"`
	PatientGender   string `json:"patientGender"`
	HospitalID      string `json:"hospitalId"`
	DoctorID        int    `json:"doctorId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Symptoms        string `json:"symptoms"`
}
