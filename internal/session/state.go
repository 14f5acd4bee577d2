// Package session persists the small workflow-progress record that
// survives across stratum invocations. The file lives at
// .stratum/state.json and is replaced atomically on every save, so a
// concurrent reader sees either the old or the new state, never a mix.
package session

import "time"

// CurrentVersion is the state schema version written by this build.
const CurrentVersion = 1

// LayerResult is the recorded outcome of one workflow layer
type LayerResult string

const (
	// LayerPass means the layer's gate passed
	LayerPass LayerResult = "pass"
	// LayerFail means the layer's gate failed
	LayerFail LayerResult = "fail"
	// LayerSkip means the layer was deliberately skipped
	LayerSkip LayerResult = "skip"
)

// Valid reports whether the result is one of the allowed values
func (r LayerResult) Valid() bool {
	switch r {
	case LayerPass, LayerFail, LayerSkip:
		return true
	default:
		return false
	}
}

// State is the persisted session record. Missing fields in a loaded
// file default to their zero values; unknown fields are ignored. Both
// are deliberate so old and new builds can share a state file.
type State struct {
	Version      int                 `json:"version"`
	LoopActive   bool                `json:"loop_active"`
	LoopPaused   bool                `json:"loop_paused"`
	CurrentLayer int                 `json:"current_layer"`
	LayerResults map[int]LayerResult `json:"layer_results"`
	LastUpdated  time.Time           `json:"last_updated"`
}

// NewState creates an empty session state
func NewState() *State {
	return &State{
		Version:      CurrentVersion,
		LayerResults: make(map[int]LayerResult),
	}
}

// RecordLayer stores the outcome of one layer and advances the current
// layer marker. The receiver is returned for chaining.
func (s *State) RecordLayer(layer int, result LayerResult) *State {
	if s.LayerResults == nil {
		s.LayerResults = make(map[int]LayerResult)
	}
	s.LayerResults[layer] = result
	s.CurrentLayer = layer
	return s
}
