package progress

import "time"

// DeadlineLayout is the date format admins store deadlines in.
const DeadlineLayout = "2006-01-02"

// DaysRemaining returns whole days from now until the deadline date string.
// Negative means overdue. Deadlines are display-only; nothing in the engine
// blocks an overdue course. ok is false when the date does not parse.
func DaysRemaining(now time.Time, deadline string) (int, bool) {
	due, err := time.Parse(DeadlineLayout, deadline)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24), true
}
