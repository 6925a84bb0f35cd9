package domain

import "time"

// Priority is a task priority as the remote service models it:
// 1 is highest, 3 is lowest, 0 means no priority set.
type Priority int

const (
	PriorityNone Priority = 0
	PriorityHigh Priority = 1
	PriorityMid  Priority = 2
	PriorityLow  Priority = 3
)

// ParsePriority converts the wire encoding ("N", "1", "2", "3") to a Priority.
// Anything unrecognized maps to PriorityNone.
func ParsePriority(s string) Priority {
	switch s {
	case "1":
		return PriorityHigh
	case "2":
		return PriorityMid
	case "3":
		return PriorityLow
	default:
		return PriorityNone
	}
}

// String returns the wire encoding expected by the remote service.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "1"
	case PriorityMid:
		return "2"
	case PriorityLow:
		return "3"
	default:
		return "N"
	}
}

// Task is a single task flattened out of the remote list/series/task nesting.
type Task struct {
	ListID   int64
	SeriesID int64
	TaskID   int64

	Name     string
	URL      string
	Source   string
	Tags     []string
	Priority Priority

	Due        time.Time
	HasDueTime bool

	Added     time.Time
	Completed time.Time
	Deleted   time.Time
}

// Ref returns the identifier triple for this task.
func (t Task) Ref() Ref {
	return TaskRef(t.ListID, t.SeriesID, t.TaskID)
}

// IsCompleted reports whether the task has a completion timestamp.
func (t Task) IsCompleted() bool {
	return !t.Completed.IsZero()
}

// IsDeleted reports whether the task has been deleted remotely.
func (t Task) IsDeleted() bool {
	return !t.Deleted.IsZero()
}

// IsOverdue reports whether the task has a due date in the past and is
// neither completed nor deleted.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Due.IsZero() || t.IsCompleted() || t.IsDeleted() {
		return false
	}
	return t.Due.Before(now)
}
