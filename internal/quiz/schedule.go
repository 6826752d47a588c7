package quiz

import "time"

const (
	Day1Delay = 24 * time.Hour
	Day7Delay = 7 * 24 * time.Hour
)

// Schedule holds the due time for each stage if the quiz moved there at the given instant.
type Schedule struct {
	Today time.Time
	Day1  time.Time
	Day7  time.Time
}

func CalculateSchedule(now time.Time) Schedule {
	return Schedule{
		Today: now,
		Day1:  now.Add(Day1Delay),
		Day7:  now.Add(Day7Delay),
	}
}

// For returns the due time of status. Done has no further review and is stamped with now.
func (s Schedule) For(status Status) time.Time {
	switch status {
	case StatusDay1:
		return s.Day1
	case StatusDay7:
		return s.Day7
	default:
		return s.Today
	}
}
