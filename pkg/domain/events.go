package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventConvert  EventType = "convert"
	EventSimulate EventType = "simulate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ConversionEvent is emitted after a construction stage produced a new automaton.
type ConversionEvent struct {
	EventBase
	Stage    string        `json:"stage"`
	From     Kind          `json:"from,omitempty"`
	To       Kind          `json:"to"`
	States   int           `json:"states"`
	Duration time.Duration `json:"duration"`
}

// SimulationEvent is emitted after a run finished, successfully or not.
type SimulationEvent struct {
	EventBase
	Automaton string        `json:"automaton,omitempty"`
	Kind      Kind          `json:"kind"`
	Accepted  bool          `json:"accepted"`
	Steps     int           `json:"steps"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnConvert  func(context.Context, *ConversionEvent)
	OnSimulate func(context.Context, *SimulationEvent)
}
