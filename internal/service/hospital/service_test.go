package hospital

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnadr/hospital-api/internal/model"
	apperrors "github.com/apnadr/hospital-api/pkg/errors"
	"github.com/apnadr/hospital-api/pkg/geo"
)

type stubRepo struct {
	hospitals []*model.Hospital
	listCalls int
}

func (s *stubRepo) Create(ctx context.Context, h *model.Hospital) error {
	s.hospitals = append(s.hospitals, h)
	return nil
}

func (s *stubRepo) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	for _, h := range s.hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, apperrors.NotFound("hospital", nil)
}

func (s *stubRepo) List(ctx context.Context) ([]*model.Hospital, error) {
	s.listCalls++
	return s.hospitals, nil
}

func (s *stubRepo) Search(ctx context.Context, filter model.HospitalFilter) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range s.hospitals {
		if filter.City != "" && h.City != filter.City {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *stubRepo) ListEmergency(ctx context.Context, limit int) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range s.hospitals {
		if !h.Emergency {
			continue
		}
		out = append(out, h)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubRepo) ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]model.Doctor, error) {
	h, err := s.Get(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return h.Doctors, nil
}

func (s *stubRepo) GetDoctor(ctx context.Context, hospitalID uuid.UUID, doctorID int) (*model.Doctor, error) {
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

func (s *stubRepo) Count(ctx context.Context) (int, error) {
	return len(s.hospitals), nil
}

// Fixture coordinates follow the seeded Telangana directory: a cluster in
// central Hyderabad plus Warangal roughly 134km away.
func newStubRepo() *stubRepo {
	return &stubRepo{hospitals: []*model.Hospital{
		{ID: uuid.New(), Name: "Osmania General Hospital", City: "Hyderabad", Longitude: 78.4867, Latitude: 17.3850, Emergency: true},
		{ID: uuid.New(), Name: "Gandhi Hospital", City: "Hyderabad", Longitude: 78.5034, Latitude: 17.4399, Emergency: true},
		{ID: uuid.New(), Name: "King Koti Government Hospital", City: "Hyderabad", Longitude: 78.4744, Latitude: 17.3936, Emergency: false},
		{ID: uuid.New(), Name: "MGM Hospital Warangal", City: "Warangal", Longitude: 79.5946, Latitude: 17.9689, Emergency: true},
	}}
}

func TestFindNearbyOrderedByDistance(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.Minute)

	// Charminar, a stone's throw from Osmania.
	origin := geo.Point{Longitude: 78.4747, Latitude: 17.3616}

	nearby, err := svc.FindNearby(context.Background(), origin, DefaultRadiusKm, MaxNearbyResults)
	require.NoError(t, err)
	require.Len(t, nearby, 3)

	for i := 1; i < len(nearby); i++ {
		assert.LessOrEqual(t, nearby[i-1].DistanceKm, nearby[i].DistanceKm)
	}
	for _, h := range nearby {
		assert.LessOrEqual(t, h.DistanceKm, DefaultRadiusKm)
		assert.NotEqual(t, "MGM Hospital Warangal", h.Name)
	}
}

func TestFindNearbyRadiusBoundary(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.Minute)

	// Roughly 9km west of the Hyderabad cluster.
	origin := geo.Point{Longitude: 78.40, Latitude: 17.38}

	none, err := svc.FindNearby(context.Background(), origin, 5, MaxNearbyResults)
	require.NoError(t, err)
	assert.Empty(t, none)

	some, err := svc.FindNearby(context.Background(), origin, 15, MaxNearbyResults)
	require.NoError(t, err)
	assert.NotEmpty(t, some)
}

func TestFindNearbyCapsResults(t *testing.T) {
	repo := &stubRepo{}
	for i := 0; i < 25; i++ {
		repo.hospitals = append(repo.hospitals, &model.Hospital{
			ID:        uuid.New(),
			Name:      "Clinic",
			Longitude: 78.48 + float64(i)*0.001,
			Latitude:  17.38,
		})
	}
	svc := NewService(repo, time.Minute)

	nearby, err := svc.FindNearby(context.Background(), geo.Point{Longitude: 78.48, Latitude: 17.38}, DefaultRadiusKm, 0)
	require.NoError(t, err)
	assert.Len(t, nearby, MaxNearbyResults)
}

func TestFindNearbyInvalidCoordinate(t *testing.T) {
	svc := NewService(newStubRepo(), time.Minute)

	_, err := svc.FindNearby(context.Background(), geo.Point{Longitude: 200, Latitude: 17}, DefaultRadiusKm, 5)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestFindNearestEmergency(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.Minute)

	// King Koti is the closest hospital to this point but is not
	// emergency-capable, so Osmania wins.
	origin := geo.Point{Longitude: 78.4744, Latitude: 17.3936}

	nearest, err := svc.FindNearestEmergency(context.Background(), origin)
	require.NoError(t, err)
	assert.Equal(t, "Osmania General Hospital", nearest.Name)
	assert.True(t, nearest.Emergency)
	assert.Greater(t, nearest.DistanceKm, 0.0)
}

func TestFindNearestEmergencyUnbounded(t *testing.T) {
	repo := &stubRepo{hospitals: []*model.Hospital{
		{ID: uuid.New(), Name: "MGM Hospital Warangal", Longitude: 79.5946, Latitude: 17.9689, Emergency: true},
	}}
	svc := NewService(repo, time.Minute)

	// Over 100km away; distance never disqualifies the only candidate.
	nearest, err := svc.FindNearestEmergency(context.Background(), geo.Point{Longitude: 78.4867, Latitude: 17.3850})
	require.NoError(t, err)
	assert.Equal(t, "MGM Hospital Warangal", nearest.Name)
	assert.Greater(t, nearest.DistanceKm, 100.0)
}

func TestFindNearestEmergencyNoneAvailable(t *testing.T) {
	repo := &stubRepo{hospitals: []*model.Hospital{
		{ID: uuid.New(), Name: "King Koti Government Hospital", Longitude: 78.4744, Latitude: 17.3936, Emergency: false},
	}}
	svc := NewService(repo, time.Minute)

	_, err := svc.FindNearestEmergency(context.Background(), geo.Point{Longitude: 78.48, Latitude: 17.38})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestSearchUsesDirectoryCache(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.Minute)

	_, err := svc.Search(context.Background(), model.HospitalFilter{})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), model.HospitalFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
}

func TestSearchFilterBypassesCache(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.Minute)

	hospitals, err := svc.Search(context.Background(), model.HospitalFilter{City: "Warangal"})
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "MGM Hospital Warangal", hospitals[0].Name)
	assert.Equal(t, 0, repo.listCalls)
}

func TestDoctorsUnknownHospital(t *testing.T) {
	svc := NewService(newStubRepo(), time.Minute)

	_, err := svc.Doctors(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestListEmergencyOnlyEmergencyCapable(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.Minute)

	hospitals, err := svc.ListEmergency(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, hospitals)
	for _, h := range hospitals {
		assert.True(t, h.Emergency)
	}
}
