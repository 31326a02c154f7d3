package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the created_at format, second precision in local time.
const TimeLayout = "2006-01-02 15:04:05"

// ErrInvalidPriority is returned by ParsePriority for unknown input.
var ErrInvalidPriority = errors.New("invalid priority")

// Priority is a task priority level, stored in its display form.
type Priority string

const (
	PriorityLow    Priority = "Basse"
	PriorityMedium Priority = "Moyenne"
	PriorityHigh   Priority = "Haute"
)

// DefaultPriority is preselected when the user does not pick one.
const DefaultPriority = PriorityMedium

// Priorities returns all priorities in display order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority accepts the stored form or the English name (or its first
// letter), case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basse", "low", "l":
		return PriorityLow, nil
	case "moyenne", "medium", "m":
		return PriorityMedium, nil
	case "haute", "high", "h":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w %q, must be one of: low, medium, high", ErrInvalidPriority, s)
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the English label used in CLI output.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

// Next returns the following priority in display order, wrapping around.
func (p Priority) Next() Priority {
	all := Priorities()
	for i, candidate := range all {
		if candidate == p {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultPriority
}

// Task represents a single entry in the task file.
type Task struct {
	ID          int      `json:"id" yaml:"id"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Completed   bool     `json:"completed" yaml:"completed"`
	CreatedAt   string   `json:"created_at" yaml:"created_at"`
}

// Status returns the display status of the task.
func (t Task) Status() string {
	if t.Completed {
		return "Done"
	}
	return "Pending"
}

// CreatedTime parses CreatedAt in the local time zone.
func (t Task) CreatedTime() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, t.CreatedAt, time.Local)
}
