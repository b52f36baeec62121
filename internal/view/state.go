package view

import "fmt"

// State is the lifecycle stage of a view model
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
	StateNotFound
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText
func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{StateLoading, StateReady, StateError, StateNotFound} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

const (
	msgListFailed   = "Failed to fetch coins"
	msgNotFound     = "Coin not found"
	msgDetailFailed = "Failed to fetch coin details"
)
