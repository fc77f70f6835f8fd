package clap

import (
	"fmt"

	"github.com/Iron-Ham/clap/internal/errors"
)

// MaxUserClap caps how many claps a single user can contribute.
const MaxUserClap = 50

// State is the counter state of one widget.
type State struct {
	Count      int  `json:"count" mapstructure:"count" yaml:"count"`
	CountTotal int  `json:"countTotal" mapstructure:"count_total" yaml:"count_total"`
	IsClicked  bool `json:"isClicked" mapstructure:"is_clicked" yaml:"is_clicked"`
}

// DefaultInitialState is used when the caller does not supply one.
var DefaultInitialState = State{
	Count:      0,
	CountTotal: 56,
	IsClicked:  false,
}

// Validate reports whether s respects the counter invariants.
func (s State) Validate() error {
	switch {
	case s.Count < 0:
		return errors.NewValidationError("count must be non-negative").
			WithField("count").WithValue(s.Count)
	case s.Count > MaxUserClap:
		return errors.NewValidationError(fmt.Sprintf("count must not exceed %d", MaxUserClap)).
			WithField("count").WithValue(s.Count)
	case s.CountTotal < 0:
		return errors.NewValidationError("count_total must be non-negative").
			WithField("count_total").WithValue(s.CountTotal)
	}
	return nil
}

// AtCap reports whether the user has used up every clap.
func (s State) AtCap() bool {
	return s.Count >= MaxUserClap
}

func (s State) String() string {
	return fmt.Sprintf("count=%d total=%d clicked=%t", s.Count, s.CountTotal, s.IsClicked)
}
