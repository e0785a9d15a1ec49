// Package scoring turns heterogeneous raw sub-scores into the single
// 0-100 score the progression state machine consumes. Every combination
// is a fixed weighted sum, and every output is an integer obtained by
// truncating the weighted sum unless noted otherwise.
package scoring

// PassThreshold is the exam pass/fail bar applied to the final score.
const PassThreshold = 70

// Subscore is one raw 0-100 component. Missing marks a component the
// oracle failed to supply: it scores as zero (never as "skip") but stays
// distinguishable from a real zero. Fallback marks a substituted default
// value: it scores at Value but taints the aggregate.
type Subscore struct {
	Value    float64
	Missing  bool
	Fallback bool
}

// Sub wraps a present raw value.
func Sub(v float64) Subscore { return Subscore{Value: v} }

// MissingSub is a defaulted-to-zero component.
func MissingSub() Subscore { return Subscore{Missing: true} }

// FallbackSub is a substituted default for a component whose oracle
// judgment failed. It counts at the given value, tagged as a fallback.
func FallbackSub(v float64) Subscore { return Subscore{Value: v, Fallback: true} }

// Score is an aggregated final score. Fallback is set when any component
// was a defaulted fallback rather than a real measurement, so callers and
// tests can tell "really scored 40" from "oracle failed, defaulted to 40".
type Score struct {
	Value    int  `json:"value"`
	Fallback bool `json:"fallback,omitempty"`
}

// Passed reports whether the score clears the exam threshold.
func (s Score) Passed() bool { return s.Value >= PassThreshold }

// Ratio is an objective correct/total item count.
type Ratio struct {
	Correct int
	Total   int
}

// Percent converts the ratio to a 0-100 sub-score. A zero total scores as
// a missing component.
func (r Ratio) Percent() Subscore {
	if r.Total <= 0 {
		return MissingSub()
	}
	return Sub(float64(r.Correct) / float64(r.Total) * 100)
}

func (s Subscore) val() float64 {
	if s.Missing {
		return 0
	}
	return s.Value
}

// tainted reports whether this component was not a real measurement.
func (s Subscore) tainted() bool { return s.Missing || s.Fallback }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
