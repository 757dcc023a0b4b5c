package reminder

import (
	"time"
)

// MaxReminderMinutes is the longest lead time a reminder may have (one year).
const MaxReminderMinutes = 365 * 24 * 60

// FireTimes returns the activations of a follow-up due at dueAt: the due time
// itself and, when minutes > 0, the reminder minutes earlier. Both are
// truncated to the whole minute and dropped when already in the past. Lead
// times above MaxReminderMinutes get no reminder.
func FireTimes(dueAt time.Time, minutes int, now time.Time) []Fire {
	candidates := []Fire{{Kind: KindDue, At: dueAt.Truncate(time.Minute)}}
	if minutes > 0 && minutes <= MaxReminderMinutes {
		candidates = append(candidates, Fire{
			Kind: KindReminder,
			At:   dueAt.Add(-time.Duration(minutes) * time.Minute).Truncate(time.Minute),
		})
	}

	fires := make([]Fire, 0, len(candidates))
	for _, f := range candidates {
		if f.At.Before(now) {
			continue
		}
		fires = append(fires, f)
	}
	return fires
}

// onceSchedule is a cron.Schedule that activates exactly once, at at.
type onceSchedule struct {
	at time.Time
}

// Next returns at until it has passed, then the zero time, which cron treats
// as never.
func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}
