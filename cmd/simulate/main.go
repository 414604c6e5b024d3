package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/apnadr/hospital-api/internal/model"
)

// Drives randomized booking and lookup traffic against a running API
// instance. Bookings deliberately collide on a small set of slots so the
// double-booking guard is exercised under concurrency.

type simConfig struct {
	BaseURL      string
	Duration     time.Duration
	Workers      int
	BookingRatio float64
	CancelRatio  float64
	SlotSpread   int
}

type dataPool struct {
	hospitals []hospitalRef

	mu           sync.RWMutex
	appointments []uuid.UUID
}

type hospitalRef struct {
	ID      uuid.UUID
	Doctors []int
}

func (dp *dataPool) addAppointment(id uuid.UUID) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.appointments = append(dp.appointments, id)
}

func (dp *dataPool) randomAppointment(rng *rand.Rand) (uuid.UUID, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.appointments) == 0 {
		return uuid.Nil, false
	}
	return dp.appointments[rng.Intn(len(dp.appointments))], true
}

type opMetrics struct {
	Total    int64
	Success  int64
	Conflict int64
	Error    int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (om *opMetrics) record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case success:
		atomic.AddInt64(&om.Success, 1)
	case conflict:
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *opMetrics) stats() (avg, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))
	p50 = latencies[len(latencies)*50/100]
	p95 = latencies[min(len(latencies)*95/100, len(latencies)-1)]
	return avg, p50, p95
}

type simulator struct {
	cfg    simConfig
	pool   *dataPool
	client *http.Client

	booking opMetrics
	cancel  opMetrics
	reads   opMetrics
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := loadSimConfig()
	log.Printf("simulator: base=%s duration=%s workers=%d", cfg.BaseURL, cfg.Duration, cfg.Workers)

	sim := &simulator{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := sim.loadPool(ctx)
	cancel()
	if err != nil {
		log.Fatalf("load hospital directory: %v", err)
	}
	sim.pool = pool
	log.Printf("loaded %d hospitals", len(pool.hospitals))

	sim.run()
	sim.printReport()
}

func loadSimConfig() simConfig {
	return simConfig{
		BaseURL:      getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:     getDuration("SIM_DURATION", 30*time.Second),
		Workers:      getInt("SIM_WORKERS", 8),
		BookingRatio: getFloat("SIM_BOOKING_RATIO", 0.6),
		CancelRatio:  getFloat("SIM_CANCEL_RATIO", 0.1),
		SlotSpread:   getInt("SIM_SLOT_SPREAD", 12),
	}
}

// loadPool fetches the hospital directory so bookings reference real
// hospital and doctor identifiers.
func (s *simulator) loadPool(ctx context.Context) (*dataPool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/api/hospitals", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory request returned %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}

	var hospitals []model.Hospital
	if err := json.Unmarshal(env.Data, &hospitals); err != nil {
		return nil, err
	}
	if len(hospitals) == 0 {
		return nil, fmt.Errorf("no hospitals in directory, run cmd/seed first")
	}

	pool := &dataPool{}
	for _, h := range hospitals {
		ref := hospitalRef{ID: h.ID}
		for _, d := range h.Doctors {
			ref.Doctors = append(ref.Doctors, d.ID)
		}
		if len(ref.Doctors) > 0 {
			pool.hospitals = append(pool.hospitals, ref)
		}
	}
	return pool, nil
}

func (s *simulator) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}
	wg.Wait()
}

func (s *simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
	faker := gofakeit.New(uint64(workerID) + 1)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r := rng.Float64()
		switch {
		case r < s.cfg.BookingRatio:
			s.doBooking(ctx, rng, faker)
		case r < s.cfg.BookingRatio+s.cfg.CancelRatio:
			s.doCancel(ctx, rng)
		default:
			s.doRead(ctx, rng)
		}
	}
}

func (s *simulator) doBooking(ctx context.Context, rng *rand.Rand, faker *gofakeit.Faker) {
	hosp := s.pool.hospitals[rng.Intn(len(s.pool.hospitals))]
	doctorID := hosp.Doctors[rng.Intn(len(hosp.Doctors))]

	// Times are drawn from a small pool so concurrent workers collide on
	// slots and some bookings come back 409.
	slot := rng.Intn(s.cfg.SlotSpread)
	date := time.Now().AddDate(0, 0, 1+slot%3).Format("2006-01-02")
	hour := 9 + slot%8

	body, _ := json.Marshal(model.BookAppointmentRequest{
		PatientName:     faker.Name(),
		PatientPhone:    fmt.Sprintf("%010d", rng.Int63n(1e10)),
		PatientEmail:    faker.Email(),
		PatientGender:   faker.RandomString([]string{"Male", "Female", "Other"}),
		HospitalID:      hosp.ID.String(),
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: fmt.Sprintf("%02d:00", hour),
		Symptoms:        faker.Sentence(6),
	})

	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/api/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success, conflict := false, false
	if err == nil {
		defer resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusCreated:
			success = true
			var env envelope
			raw, _ := io.ReadAll(resp.Body)
			if json.Unmarshal(raw, &env) == nil && env.Data != nil {
				var apt struct {
					ID uuid.UUID `json:"id"`
				}
				if json.Unmarshal(env.Data, &apt) == nil && apt.ID != uuid.Nil {
					s.pool.addAppointment(apt.ID)
				}
			}
		case http.StatusConflict:
			conflict = true
		}
	}

	s.booking.record(latency, success, conflict)
}

func (s *simulator) doCancel(ctx context.Context, rng *rand.Rand) {
	id, ok := s.pool.randomAppointment(rng)
	if !ok {
		return
	}

	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/appointments/%s/cancel", s.cfg.BaseURL, id), nil)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		defer resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}
	s.cancel.record(latency, success, false)
}

func (s *simulator) doRead(ctx context.Context, rng *rand.Rand) {
	var url string
	if id, ok := s.pool.randomAppointment(rng); ok && rng.Intn(2) == 0 {
		url = fmt.Sprintf("%s/api/appointments/%s", s.cfg.BaseURL, id)
	} else {
		hosp := s.pool.hospitals[rng.Intn(len(s.pool.hospitals))]
		url = fmt.Sprintf("%s/api/hospitals/%s/doctors", s.cfg.BaseURL, hosp.ID)
	}

	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		defer resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}
	s.reads.record(latency, success, false)
}

func (s *simulator) printReport() {
	fmt.Println()
	fmt.Println("SIMULATION REPORT")
	fmt.Printf("duration=%s workers=%d\n\n", s.cfg.Duration, s.cfg.Workers)

	printOp("Booking", &s.booking)
	printOp("Cancel", &s.cancel)
	printOp("Reads", &s.reads)
}

func printOp(name string, om *opMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	errs := atomic.LoadInt64(&om.Error)
	avg, p50, p95 := om.stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  total=%d success=%d (%.1f%%)\n", total, success, float64(success)/float64(total)*100)
	if conflict > 0 {
		fmt.Printf("  conflicts=%d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	}
	if errs > 0 {
		fmt.Printf("  errors=%d (%.1f%%)\n", errs, float64(errs)/float64(total)*100)
	}
	fmt.Printf("  latency avg=%s p50=%s p95=%s\n\n",
		avg.Round(time.Millisecond), p50.Round(time.Millisecond), p95.Round(time.Millisecond))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
