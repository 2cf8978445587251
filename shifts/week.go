package shifts

import (
	"sort"
	"time"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/utils"
)

// WeekRules pins the custom payroll week. The week does not start at calendar
// midnight: it runs from Monday 07:00 local time to the next Monday 07:00
// (exclusive), so a night shift entered before Monday 07:00 still belongs to
// the week being paid out.
type WeekRules struct {
	StartDay  time.Weekday
	StartHour int
}

// WeekWindow is a half-open interval [Start, End).
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WeekStart returns the custom week start for the calendar week containing
// ref: the configured weekday of that week at the configured hour.
func (r WeekRules) WeekStart(ref time.Time) time.Time {
	back := (int(ref.Weekday()) - int(r.StartDay) + 7) % 7
	d := ref.AddDate(0, 0, -back)
	return time.Date(d.Year(), d.Month(), d.Day(), r.StartHour, 0, 0, 0, ref.Location())
}

// Window computes the week window for a given offset from now. Offset 0 is
// the current week, negative values go back in time.
func (r WeekRules) Window(now time.Time, offset int) WeekWindow {
	ref := now.AddDate(0, 0, 7*offset)
	start := r.WeekStart(ref)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

// WeekNavigator holds the dashboard's week offset. Going forward is clamped
// at the current week; history is unbounded.
type WeekNavigator struct {
	offset int
}

// NewWeekNavigator starts at the given offset. Positive offsets are in the
// future and clamp to the current week.
func NewWeekNavigator(offset int) *WeekNavigator {
	if offset > 0 {
		offset = 0
	}
	return &WeekNavigator{offset: offset}
}

func (n *WeekNavigator) Offset() int {
	return n.offset
}

func (n *WeekNavigator) Previous() {
	n.offset--
}

func (n *WeekNavigator) Next() {
	if n.offset < 0 {
		n.offset++
	}
}

func (n *WeekNavigator) Window(now time.Time, rules WeekRules) WeekWindow {
	return rules.Window(now, n.offset)
}

// WeeklySummary is the per-employee payroll line for one week window.
type WeeklySummary struct {
	Employee          models.Employee
	TotalHours        float64
	EstimatedPay      float64
	HasAnomalousShift bool
	Shifts            []Shift
}

// Summarize buckets shifts into the window and totals them per employee.
// Only closed shifts count towards hours and pay; an open shift whose entry
// falls inside the window is excluded from the totals (it is surfaced
// separately on the live view). A missing hourly rate pays zero.
//
// Output is sorted by total hours descending. An earlier revision sorted by
// estimated pay; total hours is the ordering that stuck.
func Summarize(all []Shift, employees []models.Employee, window WeekWindow) []WeeklySummary {
	byEmployee := make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		byEmployee[e.ID] = e
	}

	included := utils.Filter(all, func(s Shift) bool {
		return window.Contains(s.Entry) && !s.IsOpen
	})

	result := make([]WeeklySummary, 0)
	for employeeID, group := range utils.GroupBy(included, func(s Shift) string { return s.EmployeeID }) {
		emp, ok := byEmployee[employeeID]
		if !ok {
			continue
		}

		line := WeeklySummary{Employee: emp, Shifts: group}
		for _, s := range group {
			line.TotalHours += s.Duration.Hours()
			line.HasAnomalousShift = line.HasAnomalousShift || s.IsAnomalous
		}

		rate := 0.0
		if emp.HourlyRate != nil {
			rate = *emp.HourlyRate
		}
		line.EstimatedPay = line.TotalHours * rate
		result = append(result, line)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalHours != result[j].TotalHours {
			return result[i].TotalHours > result[j].TotalHours
		}
		return result[i].Employee.FullName < result[j].Employee.FullName
	})
	return result
}
