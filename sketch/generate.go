package sketch

import (
	"fmt"
	"strconv"

	"github.com/rfielding/fsc-synth/family"
)

// GenerateFSC returns the sketch of a finite-state controller with memorySize
// memory values. For each observation o and memory value m it declares the
// action hole A([o],m) over actions and the memory-update hole M([o],m) over
// 0..memorySize-1.
func GenerateFSC(name string, observations, actions []string, memorySize int) (*Sketch, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrInvalidSketch)
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: no actions", ErrInvalidSketch)
	}
	if memorySize < 1 {
		return nil, fmt.Errorf("%w: memory size %d", ErrInvalidSketch, memorySize)
	}

	memory := make([]string, memorySize)
	for m := range memory {
		memory[m] = strconv.Itoa(m)
	}
	s := &Sketch{
		Name:        name,
		Description: fmt.Sprintf("%d-memory controller over %d observations and %d actions", memorySize, len(observations), len(actions)),
	}
	for m := 0; m < memorySize; m++ {
		for _, o := range observations {
			a := family.Decision{Kind: family.KindAction, Observation: o, Memory: m}
			u := family.Decision{Kind: family.KindMemoryUpdate, Observation: o, Memory: m}
			s.Holes = append(s.Holes,
				HoleSpec{Name: a.HoleName(), Labels: append([]string(nil), actions...)},
				HoleSpec{Name: u.HoleName(), Labels: append([]string(nil), memory...)},
			)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
