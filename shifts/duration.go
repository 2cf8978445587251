package shifts

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as HH:MM:SS, zero padded. Hours keep
// counting past 24, which is exactly what makes a forgotten clock-out visible
// on the kiosk.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// LiveViews produces the open-shift views for one tick. The underlying shifts
// are not touched; a new view slice is built each call.
func LiveViews(all []Shift, now time.Time) []OpenShift {
	open := Open(all)
	views := make([]OpenShift, 0, len(open))
	for _, s := range open {
		views = append(views, OpenShift{
			Shift:        s,
			LiveDuration: FormatElapsed(now.Sub(s.Entry)),
		})
	}
	return views
}
