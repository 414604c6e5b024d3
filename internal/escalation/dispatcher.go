// Package escalation implements the emergency dispatch timeline: an ambulance
// countdown and a longer cab-booking fallback, each independently cancelable.
// Whichever fires first atomically claims the terminal transition; the other
// timer is stopped and its action never runs.
package escalation

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/apnadr/hospital-api/internal/model"
	apperrors "github.com/apnadr/hospital-api/pkg/errors"
)

// CabProviders is the fixed fallback transport set; one is chosen uniformly
// at random when the ambulance misses its window.
var CabProviders = []model.CabProvider{
	{Name: "Uber", Link: "https://m.uber.com/ul/"},
	{Name: "Ola", Link: "https://book.olacabs.com/"},
	{Name: "Rapido", Link: "https://rapido.bike/"},
}

type Dispatcher struct {
	countdown time.Duration
	fallback  time.Duration
	tick      time.Duration

	mu        sync.Mutex
	timelines map[uuid.UUID]*timeline
}

type timeline struct {
	mu        sync.Mutex
	id        uuid.UUID
	hospital  *model.Hospital
	state     model.DispatchState
	remaining int
	cab       *model.CabProvider
	startedAt time.Time

	ticker       *time.Ticker
	fallbackTask *time.Timer
	stop         chan struct{}
}

// NewDispatcher builds a dispatcher. tick is the countdown resolution; the
// production value is one second, tests shrink it.
func NewDispatcher(countdown, fallback, tick time.Duration) *Dispatcher {
	if tick <= 0 {
		tick = time.Second
	}
	return &Dispatcher{
		countdown: countdown,
		fallback:  fallback,
		tick:      tick,
		timelines: make(map[uuid.UUID]*timeline),
	}
}

// Dispatch starts a new timeline for the resolved emergency hospital and
// returns its initial snapshot.
func (d *Dispatcher) Dispatch(hospital *model.Hospital) *model.Dispatch {
	tl := &timeline{
		id:        uuid.New(),
		hospital:  hospital,
		state:     model.DispatchStateDispatched,
		remaining: int(d.countdown / d.tick),
		startedAt: time.Now(),
		ticker:    time.NewTicker(d.tick),
		stop:      make(chan struct{}),
	}
	tl.fallbackTask = time.AfterFunc(d.fallback, func() { d.bookCab(tl) })

	d.mu.Lock()
	d.timelines[tl.id] = tl
	d.mu.Unlock()

	go d.run(tl)

	log.Info().
		Str("dispatch", tl.id.String()).
		Str("hospital", hospital.Name).
		Int("countdown_ticks", tl.remaining).
		Msg("ambulance dispatched")

	return tl.snapshot()
}

// Status returns the current snapshot of a timeline.
func (d *Dispatcher) Status(id uuid.UUID) (*model.Dispatch, error) {
	d.mu.Lock()
	tl, ok := d.timelines[id]
	d.mu.Unlock()
	if !ok {
		return nil, apperrors.NotFound("dispatch", nil)
	}
	return tl.snapshot(), nil
}

// Stop tears a timeline down early, cancelling both pending timers.
func (d *Dispatcher) Stop(id uuid.UUID) {
	d.mu.Lock()
	tl, ok := d.timelines[id]
	delete(d.timelines, id)
	d.mu.Unlock()
	if ok {
		tl.cancelTimers()
	}
}

// StopAll tears down every timeline; used on server shutdown.
func (d *Dispatcher) StopAll() {
	d.mu.Lock()
	timelines := make([]*timeline, 0, len(d.timelines))
	for _, tl := range d.timelines {
		timelines = append(timelines, tl)
	}
	d.timelines = make(map[uuid.UUID]*timeline)
	d.mu.Unlock()

	for _, tl := range timelines {
		tl.cancelTimers()
	}
}

func (d *Dispatcher) run(tl *timeline) {
	for {
		select {
		case <-tl.ticker.C:
			if d.countDown(tl) {
				return
			}
		case <-tl.stop:
			return
		}
	}
}

// countDown consumes one tick and reports whether the timeline reached a
// terminal state.
func (d *Dispatcher) countDown(tl *timeline) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.state != model.DispatchStateDispatched {
		return true
	}

	tl.remaining--
	if tl.remaining > 0 {
		return false
	}

	// Terminal: the ambulance made it. The delayed cab booking must not fire.
	tl.remaining = 0
	tl.state = model.DispatchStateArrivedOnTime
	tl.ticker.Stop()
	tl.fallbackTask.Stop()

	log.Info().Str("dispatch", tl.id.String()).Msg("ambulance arrived on time")
	return true
}

// bookCab runs when the fallback timeout fires before the countdown finished:
// the timeline passes through Delayed straight into CabBooked.
func (d *Dispatcher) bookCab(tl *timeline) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.state != model.DispatchStateDispatched {
		return
	}

	tl.state = model.DispatchStateDelayed
	tl.ticker.Stop()
	close(tl.stop)

	provider := CabProviders[rand.Intn(len(CabProviders))]
	tl.state = model.DispatchStateCabBooked
	tl.cab = &provider

	log.Warn().
		Str("dispatch", tl.id.String()).
		Str("provider", provider.Name).
		Msg("ambulance delayed, cab booked")
}

func (tl *timeline) snapshot() *model.Dispatch {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	return &model.Dispatch{
		ID:               tl.id,
		Hospital:         tl.hospital,
		State:            tl.state,
		RemainingSeconds: tl.remaining,
		Cab:              tl.cab,
		StartedAt:        tl.startedAt,
	}
}

func (tl *timeline) cancelTimers() {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.ticker.Stop()
	tl.fallbackTask.Stop()
	select {
	case <-tl.stop:
	default:
		close(tl.stop)
	}
}
