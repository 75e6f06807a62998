package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateGoalProgress_WalksToRoot(t *testing.T) {
	plan := buildPlan(
		newGoal("y1", "", LevelYear, "2025-01-01", "2025-12-31"),
		newGoal("q1", "y1", LevelQuarter, "2025-01-01", "2025-03-31"),
		newGoal("m1", "q1", LevelMonth, "2025-01-01", "2025-01-31"),
	)
	archive := []DayArchive{
		archivedDay("2025-01-02",
			ArchivedTask{ID: "t1", Completed: true, LinkedGoalID: "m1"},
			ArchivedTask{ID: "t2", Completed: false, LinkedGoalID: "q1"},
		),
	}
	now := testNow()

	plan = UpdateGoalProgress(plan, "m1", archive, nil, now)

	month, _ := FindGoal(&plan, "m1")
	quarter, _ := FindGoal(&plan, "q1")
	year, _ := FindGoal(&plan, "y1")

	assert.Equal(t, 100, month.CompletionPercentage, "m1 sees only its own task")
	assert.Equal(t, 50, quarter.CompletionPercentage, "q1 aggregates m1's task plus its own")
	assert.Equal(t, 50, year.CompletionPercentage)

	assert.Equal(t, now.UnixMilli(), month.UpdatedAt)
	assert.Equal(t, now.UnixMilli(), quarter.UpdatedAt)
	assert.Equal(t, now.UnixMilli(), year.UpdatedAt)
}

func TestUpdateGoalProgress_Idempotent(t *testing.T) {
	plan := buildPlan(
		newGoal("y1", "", LevelYear, "2025-01-01", "2025-12-31"),
		newGoal("q1", "y1", LevelQuarter, "2025-01-01", "2025-03-31"),
	)
	archive := []DayArchive{
		archivedDay("2025-01-02",
			ArchivedTask{ID: "t1", Completed: true, LinkedGoalID: "q1"},
			ArchivedTask{ID: "t2", Completed: false, LinkedGoalID: "q1"},
			ArchivedTask{ID: "t3", Completed: false, LinkedGoalID: "q1"},
		),
	}
	now := testNow()

	once := UpdateGoalProgress(plan, "q1", archive, nil, now)
	twice := UpdateGoalProgress(once, "q1", archive, nil, now)

	for _, id := range []string{"q1", "y1"} {
		a, ok := FindGoal(&once, id)
		require.True(t, ok)
		b, ok := FindGoal(&twice, id)
		require.True(t, ok)
		assert.Equal(t, a.CompletionPercentage, b.CompletionPercentage)
	}
}

func TestUpdateGoalProgress_UnknownIDIsNoop(t *testing.T) {
	plan := buildPlan(newGoal("y1", "", LevelYear, "2025-01-01", "2025-12-31"))
	updated := UpdateGoalProgress(plan, "ghost", nil, nil, testNow())
	assert.Equal(t, plan, updated)
}

func TestRefreshProgress_AfterTaskCompletion(t *testing.T) {
	// Completing a day task must not leave the stored plan's cached
	// percentages stale: refreshing by the task's linked goal id walks
	// the recompute up to the root.
	plan := buildPlan(
		newGoal("y1", "", LevelYear, "2025-01-01", "2025-12-31"),
		newGoal("q1", "y1", LevelQuarter, "2025-01-01", "2025-03-31"),
		newGoal("y2", "", LevelYear, "2025-01-01", "2025-12-31"),
	)
	current := []Task{completionTask("t1", "q1", "2025-01-05")}

	refreshed, changed := RefreshProgress(plan, []string{"q1", "ghost"}, nil, current, testNow())

	require.True(t, changed)
	quarter, _ := FindGoal(&refreshed, "q1")
	year, _ := FindGoal(&refreshed, "y1")
	other, _ := FindGoal(&refreshed, "y2")
	assert.Equal(t, 100, quarter.CompletionPercentage)
	assert.Equal(t, 100, year.CompletionPercentage)
	assert.Equal(t, 0, other.CompletionPercentage, "unrelated root stays put")
}

func TestRefreshProgress_NoMatchingGoals(t *testing.T) {
	plan := buildPlan(newGoal("y1", "", LevelYear, "2025-01-01", "2025-12-31"))

	refreshed, changed := RefreshProgress(plan, []string{"ghost"}, nil, nil, testNow())
	assert.False(t, changed)
	assert.Equal(t, plan, refreshed)

	_, changed = RefreshProgress(plan, nil, nil, nil, testNow())
	assert.False(t, changed)
}

func TestUpdateGoalProgress_MidTreeStart(t *testing.T) {
	// Starting from a mid-tree goal updates it and every ancestor, but
	// never touches its children.
	plan := buildPlan(
		newGoal("y1", "", LevelYear, "2025-01-01", "2025-12-31"),
		newGoal("q1", "y1", LevelQuarter, "2025-01-01", "2025-03-31"),
		newGoal("m1", "q1", LevelMonth, "2025-01-01", "2025-01-31"),
	)
	archive := []DayArchive{
		archivedDay("2025-01-02", ArchivedTask{ID: "t1", Completed: true, LinkedGoalID: "m1"}),
	}

	plan = UpdateGoalProgress(plan, "q1", archive, nil, testNow())

	month, _ := FindGoal(&plan, "m1")
	quarter, _ := FindGoal(&plan, "q1")
	year, _ := FindGoal(&plan, "y1")

	assert.Equal(t, 0, month.CompletionPercentage, "children are left alone")
	assert.Equal(t, 100, quarter.CompletionPercentage)
	assert.Equal(t, 100, year.CompletionPercentage)
}
