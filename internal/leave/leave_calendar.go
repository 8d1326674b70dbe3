package leave

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

type CalendarEntry struct {
	LeaveID      string `json:"leave_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Designation  string `json:"designation,omitempty"`
	LeaveType    string `json:"leave_type"`
}

// CalendarMonth maps each YYYY-MM-DD day of the month to everyone approved to
// be away that day. Leaves spanning month boundaries are clipped to the month.
type CalendarMonth map[string][]CalendarEntry

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func clip(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

func (s *service) MonthCalendar(ctx context.Context, year int, month time.Month) (CalendarMonth, error) {
	first, last := monthBounds(year, month)

	leaves, err := s.repo.FindApprovedOverlapping(ctx, first, last)
	if err != nil {
		return nil, err
	}

	cal := make(CalendarMonth)
	for _, l := range leaves {
		entry := CalendarEntry{
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			LeaveType:  l.LeaveType,
		}
		if l.Employee != nil {
			entry.EmployeeName = l.Employee.FullName
			entry.Designation = l.Employee.Designation
		}

		start := clip(l.FromDate, first, last)
		end := clip(l.ToDate, first, last)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(leaveDateLayout)
			cal[key] = append(cal[key], entry)
		}
	}
	return cal, nil
}

// MonthCalendarICS renders the month's approved leaves as an iCalendar feed,
// one all-day event per leave (full range, not clipped, so calendar clients
// show spans that cross month edges correctly).
func (s *service) MonthCalendarICS(ctx context.Context, year int, month time.Month) (string, error) {
	first, last := monthBounds(year, month)

	leaves, err := s.repo.FindApprovedOverlapping(ctx, first, last)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//vthr//leave-calendar//EN")

	for _, l := range leaves {
		event := cal.AddEvent(l.ID.String())
		event.SetAllDayStartAt(l.FromDate)
		// DTEND is exclusive for all-day events.
		event.SetAllDayEndAt(l.ToDate.AddDate(0, 0, 1))

		name := l.EmployeeID.String()
		if l.Employee != nil {
			name = l.Employee.FullName
		}
		event.SetSummary(fmt.Sprintf("%s - %s leave", name, l.LeaveType))
		if l.Reason != "" {
			event.SetDescription(l.Reason)
		}
		event.SetDtStampTime(time.Now().UTC())
	}

	return cal.Serialize(), nil
}
