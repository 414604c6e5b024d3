package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnadr/hospital-api/internal/model"
	appointmentService "github.com/apnadr/hospital-api/internal/service/appointment"
	apperrors "github.com/apnadr/hospital-api/pkg/errors"
)

type stubHospitalRepo struct {
	hospital *model.Hospital
}

func (s *stubHospitalRepo) Create(ctx context.Context, h *model.Hospital) error { return nil }

func (s *stubHospitalRepo) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	if s.hospital != nil && s.hospital.ID == id {
		return s.hospital, nil
	}
	return nil, apperrors.NotFound("hospital", nil)
}

func (s *stubHospitalRepo) List(ctx context.Context) ([]*model.Hospital, error) {
	return []*model.Hospital{s.hospital}, nil
}

func (s *stubHospitalRepo) Search(ctx context.Context, filter model.HospitalFilter) ([]*model.Hospital, error) {
	return s.List(ctx)
}

func (s *stubHospitalRepo) ListEmergency(ctx context.Context, limit int) ([]*model.Hospital, error) {
	return s.List(ctx)
}

func (s *stubHospitalRepo) ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]model.Doctor, error) {
	h, err := s.Get(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return h.Doctors, nil
}

func (s *stubHospitalRepo) GetDoctor(ctx context.Context, hospitalID uuid.UUID, doctorID int) (*model.Doctor, error) {
	h, err := s.Get(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	for i := range h.Doctors {
		if h.Doctors[i].ID == doctorID {
			return &h.Doctors[i], nil
		}
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (s *stubHospitalRepo) Count(ctx context.Context) (int, error) { return 1, nil }

type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
}

func (m *memAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s|%d|%s|%s", apt.HospitalID, apt.DoctorID, apt.AppointmentDate, apt.AppointmentTime)
	for _, existing := range m.appointments {
		ekey := fmt.Sprintf("%s|%d|%s|%s", existing.HospitalID, existing.DoctorID, existing.AppointmentDate, existing.AppointmentTime)
		if existing.Active() && ekey == key {
			return apperrors.Conflict("this time slot is already booked, please choose another time", nil)
		}
	}

	cp := *apt
	m.appointments[apt.ID] = &cp
	return nil
}

func (m *memAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apt, ok := m.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	cp := *apt
	return &cp, nil
}

func (m *memAppointmentRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*model.Appointment, 0, len(m.appointments))
	for _, apt := range m.appointments {
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memAppointmentRepo) Update(ctx context.Context, apt *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.appointments[apt.ID]; !ok {
		return apperrors.NotFound("appointment", nil)
	}
	cp := *apt
	m.appointments[apt.ID] = &cp
	return nil
}

type noopNotifier struct{}

func (noopNotifier) SendBookingConfirmation(*model.Appointment) {}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hospitalID := uuid.New()
	hospitalRepo := &stubHospitalRepo{hospital: &model.Hospital{
		ID:   hospitalID,
		Name: "Gandhi Hospital",
		City: "Hyderabad",
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Sunita Verma", Specialization: "Cardiology", Available: true},
		},
	}}
	repo := &memAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}

	svc := appointmentService.NewService(repo, hospitalRepo, noopNotifier{})
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api"))
	return engine, hospitalID
}

func bookingBody(hospitalID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"patientName":     "Sita Devi",
		"patientPhone":    "9876543210",
		"patientEmail":    "sita.devi@example.com",
		"patientGender":   "Female",
		"hospitalId":      hospitalID.String(),
		"doctorId":        1,
		"appointmentDate": "2099-01-15",
		"appointmentTime": "10:30",
		"symptoms":        "chest pain",
	}
}

func postJSON(engine *gin.Engine, url string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestBookAppointmentEndpoint(t *testing.T) {
	engine, hospitalID := setupRouter(t)

	w, env := postJSON(engine, "/api/appointments", bookingBody(hospitalID))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Appointment booked successfully", env.Message)

	var apt model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &apt))
	assert.Equal(t, model.AppointmentStatusConfirmed, apt.Status)
	assert.Equal(t, "Gandhi Hospital", apt.HospitalName)
	assert.Contains(t, apt.Code, "APT")
}

func TestBookAppointmentEndpointConflict(t *testing.T) {
	engine, hospitalID := setupRouter(t)

	w, _ := postJSON(engine, "/api/appointments", bookingBody(hospitalID))
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := postJSON(engine, "/api/appointments", bookingBody(hospitalID))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "this time slot is already booked, please choose another time", env.Message)
}

func TestBookAppointmentEndpointValidation(t *testing.T) {
	engine, hospitalID := setupRouter(t)

	body := bookingBody(hospitalID)
	body["patientPhone"] = "12345"

	w, env := postJSON(engine, "/api/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestBookAppointmentEndpointUnknownHospital(t *testing.T) {
	engine, _ := setupRouter(t)

	body := bookingBody(uuid.New())
	w, _ := postJSON(engine, "/api/appointments", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookAppointmentEndpointMalformedBody(t *testing.T) {
	engine, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAppointmentEndpoint(t *testing.T) {
	engine, hospitalID := setupRouter(t)

	_, env := postJSON(engine, "/api/appointments", bookingBody(hospitalID))
	var booked model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &booked))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/"+booked.ID.String(), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var getEnv envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &getEnv))
	var got model.Appointment
	require.NoError(t, json.Unmarshal(getEnv.Data, &got))
	assert.Equal(t, booked.Code, got.Code)
}

func TestGetAppointmentEndpointNotFound(t *testing.T) {
	engine, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/"+uuid.New().String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelAppointmentEndpoint(t *testing.T) {
	engine, hospitalID := setupRouter(t)

	_, env := postJSON(engine, "/api/appointments", bookingBody(hospitalID))
	var booked model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &booked))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/"+booked.ID.String()+"/cancel", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cancelEnv envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelEnv))
	var cancelled model.Appointment
	require.NoError(t, json.Unmarshal(cancelEnv.Data, &cancelled))
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// Slot freed: an identical booking goes through again.
	w2, _ := postJSON(engine, "/api/appointments", bookingBody(hospitalID))
	assert.Equal(t, http.StatusCreated, w2.Code)
}

func TestListAppointmentsEndpoint(t *testing.T) {
	engine, hospitalID := setupRouter(t)

	postJSON(engine, "/api/appointments", bookingBody(hospitalID))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var appointments []model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &appointments))
	assert.Len(t, appointments, 1)
}
