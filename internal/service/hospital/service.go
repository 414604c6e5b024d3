package hospital

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/apnadr/hospital-api/internal/model"
	"github.com/apnadr/hospital-api/internal/repository"
	apperrors "github.com/apnadr/hospital-api/pkg/errors"
	"github.com/apnadr/hospital-api/pkg/geo"
)

const (
	DefaultRadiusKm  = 10.0
	MaxNearbyResults = 10
	MaxEmergencyList = 5

	directoryCacheKey = "directory:all"
)

type Service struct {
	repo  repository.HospitalRepository
	cache *gocache.Cache
}

func NewService(repo repository.HospitalRepository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Search returns hospitals matching the text filter. The unfiltered listing
// is served from a short-lived cache since it backs the landing page.
func (s *Service) Search(ctx context.Context, filter model.HospitalFilter) ([]*model.Hospital, error) {
	if filter.Empty() {
		return s.listAll(ctx)
	}

	hospitals, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}
	return hospitals, nil
}

func (s *Service) listAll(ctx context.Context) ([]*model.Hospital, error) {
	if cached, ok := s.cache.Get(directoryCacheKey); ok {
		return cached.([]*model.Hospital), nil
	}

	hospitals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}

	s.cache.SetDefault(directoryCacheKey, hospitals)
	return hospitals, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	return s.repo.Get(ctx, id)
}

// Doctors returns the practitioner list for one hospital; unknown hospital is
// NotFound even when the doctor table is simply empty for it.
func (s *Service) Doctors(ctx context.Context, hospitalID uuid.UUID) ([]model.Doctor, error) {
	if _, err := s.repo.Get(ctx, hospitalID); err != nil {
		return nil, err
	}
	return s.repo.ListDoctors(ctx, hospitalID)
}

// FindNearby returns hospitals within radiusKm of the coordinate, ordered by
// ascending great-circle distance and capped at limit. An empty result is not
// an error; callers fall back to the unfiltered listing.
func (s *Service) FindNearby(ctx context.Context, coord geo.Point, radiusKm float64, limit int) ([]*model.HospitalWithDistance, error) {
	if !coord.Valid() {
		return nil, apperrors.Validation("location", "latitude/longitude out of range")
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	if limit <= 0 || limit > MaxNearbyResults {
		limit = MaxNearbyResults
	}

	hospitals, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]*model.HospitalWithDistance, 0, len(hospitals))
	for _, h := range hospitals {
		d := geo.DistanceKm(coord, h.Location())
		if d > radiusKm {
			continue
		}
		nearby = append(nearby, &model.HospitalWithDistance{Hospital: *h, DistanceKm: d})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// FindNearestEmergency returns the globally nearest emergency-capable
// hospital. There is no radius bound: if any emergency hospital exists it is
// returned, however far away.
func (s *Service) FindNearestEmergency(ctx context.Context, coord geo.Point) (*model.HospitalWithDistance, error) {
	if !coord.Valid() {
		return nil, apperrors.Validation("location", "latitude/longitude out of range")
	}

	hospitals, err := s.repo.ListEmergency(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency hospitals: %w", err)
	}
	if len(hospitals) == 0 {
		return nil, apperrors.NotFound("emergency hospital", nil)
	}

	nearest := hospitals[0]
	nearestDist := geo.DistanceKm(coord, nearest.Location())
	for _, h := range hospitals[1:] {
		if d := geo.DistanceKm(coord, h.Location()); d < nearestDist {
			nearest, nearestDist = h, d
		}
	}

	log.Debug().
		Str("hospital", nearest.Name).
		Float64("distance_km", nearestDist).
		Msg("resolved nearest emergency hospital")

	return &model.HospitalWithDistance{Hospital: *nearest, DistanceKm: nearestDist}, nil
}

// ListEmergency returns up to MaxEmergencyList emergency-capable hospitals.
func (s *Service) ListEmergency(ctx context.Context) ([]*model.Hospital, error) {
	return s.repo.ListEmergency(ctx, MaxEmergencyList)
}
