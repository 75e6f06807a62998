package planner

import "time"

// TaskType selects the completion rule for a day-tracking task.
type TaskType string

const (
	TaskDuration   TaskType = "duration"
	TaskCount      TaskType = "count"
	TaskCompletion TaskType = "completion"
	TaskHomework   TaskType = "homework"
)

// ValidTaskType reports whether t is one of the known task types.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskDuration, TaskCount, TaskCompletion, TaskHomework:
		return true
	default:
		return false
	}
}

// Target is the completion target of a duration or count task.
type Target struct {
	Value int    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Session is one logged work session on a duration task.
type Session struct {
	StartedAt       int64 `json:"startedAt"`
	DurationMinutes int   `json:"durationMinutes"`
}

// CountLog is one logged increment on a count task.
type CountLog struct {
	LoggedAt int64 `json:"loggedAt"`
	Count    int   `json:"count"`
}

// CompletionLog is one dated check-off on a completion or homework task.
type CompletionLog struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Task is a day-tracking task as consumed by the planner. Tasks are owned
// by the day subsystem; the planner only reads them through LinkedGoalID.
// Subtasks are referenced by id and never enter goal progress math.
type Task struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         TaskType        `json:"type"`
	Target       Target          `json:"target"`
	Sessions     []Session       `json:"sessions,omitempty"`
	CountLogs    []CountLog      `json:"countLogs,omitempty"`
	Completions  []CompletionLog `json:"completions,omitempty"`
	SubtaskIDs   []string        `json:"subtaskIds,omitempty"`
	LinkedGoalID string          `json:"linkedGoalId,omitempty"`
	CustomFields map[string]any  `json:"customFields,omitempty"`
}

// ArchivedTask is a frozen task inside a day archive. The completed flag
// was fixed when the day was archived and is trusted as-is.
type ArchivedTask struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Completed    bool   `json:"completed"`
	LinkedGoalID string `json:"linkedGoalId,omitempty"`
}

// DayArchive is an append-only snapshot of one past day's tasks.
type DayArchive struct {
	Date  string         `json:"date"`
	Tasks []ArchivedTask `json:"tasks"`
}

// TaskDone evaluates the type-specific completion rule for a current-day
// task. Current tasks are still mutable, so completion is recomputed from
// the logs rather than read from a stored flag.
func TaskDone(t Task, now time.Time) bool {
	switch t.Type {
	case TaskDuration:
		total := 0
		for _, s := range t.Sessions {
			total += s.DurationMinutes
		}
		return t.Target.Value > 0 && total >= t.Target.Value
	case TaskCount:
		total := 0
		for _, c := range t.CountLogs {
			total += c.Count
		}
		return t.Target.Value > 0 && total >= t.Target.Value
	case TaskCompletion, TaskHomework:
		today := FormatDate(now)
		for _, c := range t.Completions {
			if c.Date == today && c.Completed {
				return true
			}
		}
		return false
	default:
		return false
	}
}
