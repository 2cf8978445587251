package common

import (
	"encoding/json"
	"time"
)

// LocalDateTime is how timestamps travel on the wire: local wall time with
// no zone designator, matching what the kiosk and the admin date pickers
// produce.
type LocalDateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02T15:04:05"

func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		l.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(dateTimeLayout, s, time.Local)
	if err != nil {
		return err
	}
	l.Time = t
	return nil
}

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	if l.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(l.Format(dateTimeLayout))
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// LocalDateTimePtr converts an optional timestamp; nil stays nil.
func LocalDateTimePtr(t *time.Time) *LocalDateTime {
	if t == nil {
		return nil
	}
	return &LocalDateTime{Time: *t}
}

// TimePtr unwraps back to an optional time.Time.
func (l *LocalDateTime) TimePtr() *time.Time {
	if l == nil || l.Time.IsZero() {
		return nil
	}
	return &l.Time
}
