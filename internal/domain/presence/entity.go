package presence

import (
	"time"
)

// PresenceSession is one start/stop timing interval for an employee. A
// session with no end time is "open"; an employee has at most one open
// session at any time.
type PresenceSession struct {
	ID         string
	EmployeeID string
	StartTime  time.Time
	EndTime    *time.Time
	Location   string
	CreatedAt  time.Time
}

// Open reports whether the session has not been stopped yet.
func (s PresenceSession) Open() bool {
	return s.EndTime == nil
}

// DurationSeconds returns end-start in seconds, nil while the session is
// open. Negative durations from clock skew clamp to zero; see ClockSkewed.
func (s PresenceSession) DurationSeconds() *int64 {
	if s.EndTime == nil {
		return nil
	}
	secs := int64(s.EndTime.Sub(s.StartTime).Seconds())
	if secs < 0 {
		secs = 0
	}
	return &secs
}

// ClockSkewed reports whether the recorded end precedes the start.
func (s PresenceSession) ClockSkewed() bool {
	return s.EndTime != nil && s.EndTime.Before(s.StartTime)
}

// TimeEntry is a manually submitted timesheet row.
type TimeEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Hours      float64
	Project    string
	Notes      string
	Source     string
	Approved   bool
	CreatedAt  time.Time
}
