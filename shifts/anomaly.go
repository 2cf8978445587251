package shifts

import "time"

// Policy decides whether a shift is anomalous. The cutoff is configured, not
// hardcoded: earlier product iterations disagreed on the value (18h vs 23h)
// precisely because it was copied into several places.
type Policy struct {
	MaxShiftDuration time.Duration
}

// IsAnomalous reports whether the shift's duration (actual for closed shifts,
// elapsed-so-far for open ones) strictly exceeds the maximum. Exactly at the
// limit is still normal. Pure: must be re-evaluated on every read since now
// keeps advancing for open shifts.
func (p Policy) IsAnomalous(s Shift, now time.Time) bool {
	if s.IsOpen {
		return now.Sub(s.Entry) > p.MaxShiftDuration
	}
	if s.Exit == nil {
		return false
	}
	return s.Exit.Sub(s.Entry) > p.MaxShiftDuration
}
