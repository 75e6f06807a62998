package planner

import (
	"time"
)

// Fixed reference instant for every test that cares about "now":
// midday on 2025-01-05, local time.
func testNow() time.Time {
	return time.Date(2025, 1, 5, 12, 0, 0, 0, time.Local)
}

func newGoal(id, parentID string, level Level, start, end string) Goal {
	return Goal{
		ID:        id,
		Title:     "goal " + id,
		Level:     level,
		ParentID:  parentID,
		StartDate: start,
		EndDate:   end,
		Status:    StatusNotStarted,
	}
}

// buildPlan assembles a plan through the store mutators so the
// parent/child linkage is wired the same way production code wires it.
// Goals must be listed parents-first.
func buildPlan(goals ...Goal) GoalPlan {
	plan := GoalPlan{ID: "plan-1", Title: "Test Plan"}
	for _, g := range goals {
		plan = CreateGoal(plan, g)
	}
	return plan
}

func archivedDay(date string, tasks ...ArchivedTask) DayArchive {
	return DayArchive{Date: date, Tasks: tasks}
}

func completionTask(id, goalID, date string) Task {
	return Task{
		ID:           id,
		Type:         TaskCompletion,
		LinkedGoalID: goalID,
		Completions:  []CompletionLog{{Date: date, Completed: true}},
	}
}
