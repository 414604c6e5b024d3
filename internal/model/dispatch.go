package model

import (
	"time"

	"github.com/google/uuid"
)

type DispatchState string

// Dispatch timeline: Dispatched -> ArrivedOnTime, or
// Dispatched -> Delayed -> CabBooked when the ambulance misses its window.
const (
	DispatchStateDispatched    DispatchState = "Dispatched"
	DispatchStateArrivedOnTime DispatchState = "ArrivedOnTime"
	DispatchStateDelayed       DispatchState = "Delayed"
	DispatchStateCabBooked     DispatchState = "CabBooked"
)

// CabProvider is one of the fixed fallback transport options.
type CabProvider struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Dispatch is a snapshot of one emergency escalation timeline.
type Dispatch struct {
	ID               uuid.UUID     `json:"id"`
	Hospital         *Hospital     `json:"hospital"`
	State            DispatchState `json:"state"`
	RemainingSeconds int           `json:"remainingSeconds"`
	Cab              *CabProvider  `json:"cab,omitempty"`
	StartedAt        time.Time     `json:"startedAt"`
}
