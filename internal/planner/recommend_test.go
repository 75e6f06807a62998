package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario: a goal ending tomorrow with no progress is flagged and
// ranked critical.
func TestGoalsNeedingAttention_EndingTomorrow(t *testing.T) {
	plan := buildPlan(newGoal("g1", "", LevelMonth, "2024-10-01", "2025-01-06"))
	now := testNow()

	flagged := GoalsNeedingAttention(&plan, nil, nil, now)
	require.Len(t, flagged, 1)
	assert.Equal(t, "g1", flagged[0].ID)

	recs := Recommendations(&plan, nil, nil, now)
	require.Len(t, recs, 1)
	assert.Equal(t, UrgencyCritical, recs[0].Urgency)
	assert.Equal(t, 1, recs[0].DaysRemaining)
	assert.Equal(t, 98, recs[0].ProgressGap)
}

func TestGoalsNeedingAttention_CompletedExcluded(t *testing.T) {
	done := newGoal("done", "", LevelMonth, "2024-10-01", "2025-01-06")
	done.Status = StatusCompleted
	plan := buildPlan(done)

	assert.Empty(t, GoalsNeedingAttention(&plan, nil, nil, testNow()))
}

func TestGoalsNeedingAttention_BehindVsOnTrack(t *testing.T) {
	plan := buildPlan(
		// Behind: window mostly elapsed, no tasks done, far deadline.
		newGoal("behind", "", LevelQuarter, "2024-12-01", "2025-03-01"),
		// On track: window barely started, deadline far out.
		newGoal("fresh", "", LevelQuarter, "2025-01-04", "2025-06-30"),
	)

	flagged := GoalsNeedingAttention(&plan, nil, nil, testNow())
	require.Len(t, flagged, 1)
	assert.Equal(t, "behind", flagged[0].ID)
}

func TestGoalsNeedingAttention_PastDeadlineNotEndingSoon(t *testing.T) {
	// A goal whose window fully elapsed qualifies through the progress
	// gap (expected is 100), not through the ending-soon check.
	plan := buildPlan(newGoal("overdue", "", LevelWeek, "2024-12-01", "2024-12-07"))

	flagged := GoalsNeedingAttention(&plan, nil, nil, testNow())
	require.Len(t, flagged, 1)

	recs := Recommendations(&plan, nil, nil, testNow())
	require.Len(t, recs, 1)
	assert.Equal(t, UrgencyCritical, recs[0].Urgency)
	assert.Negative(t, recs[0].DaysRemaining)
}

func TestRecommendations_Ordering(t *testing.T) {
	now := testNow()
	plan := buildPlan(
		// medium: gap 12, 28 days left
		newGoal("gF", "", LevelMonth, "2025-01-01", "2025-02-02"),
		// high by gap: gap 23, 54 days left
		newGoal("gE", "", LevelQuarter, "2024-12-20", "2025-02-28"),
		// critical by gap: gap 38, 55 days left
		newGoal("gD", "", LevelQuarter, "2024-12-01", "2025-03-01"),
		// high by deadline: 5 days left, gap 14
		newGoal("gC", "", LevelWeek, "2025-01-04", "2025-01-10"),
		// critical by deadline: 2 days left
		newGoal("gB", "", LevelWeek, "2025-01-04", "2025-01-07"),
		// critical by deadline: 1 day left
		newGoal("gA", "", LevelWeek, "2025-01-05", "2025-01-06"),
	)

	recs := Recommendations(&plan, nil, nil, now)
	require.Len(t, recs, 6)

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Goal.ID
	}
	assert.Equal(t, []string{"gA", "gB", "gD", "gC", "gE", "gF"}, ids)

	// The ordering property: urgency rank ascends, and daysRemaining
	// ascends within a rank.
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if urgencyRank(prev.Urgency) == urgencyRank(cur.Urgency) {
			assert.LessOrEqual(t, prev.DaysRemaining, cur.DaysRemaining)
		} else {
			assert.Less(t, urgencyRank(prev.Urgency), urgencyRank(cur.Urgency))
		}
	}
}

func TestSuggestedActions_NoLinkedTasks(t *testing.T) {
	plan := buildPlan(newGoal("g1", "", LevelMonth, "2024-10-01", "2025-01-06"))

	recs := Recommendations(&plan, nil, nil, testNow())
	require.Len(t, recs, 1)
	require.NotEmpty(t, recs[0].SuggestedActions)
	assert.Contains(t, recs[0].SuggestedActions[0], "Create tasks")
}

func TestSuggestedActions_CappedAtThree(t *testing.T) {
	// All four action conditions fire: no linked tasks, ending soon,
	// big gap, unfinished child. Only the first three survive.
	parent := newGoal("p", "", LevelMonth, "2024-10-01", "2025-01-06")
	child := newGoal("c", "p", LevelWeek, "2024-12-31", "2025-01-06")
	plan := buildPlan(parent, child)

	recs := Recommendations(&plan, nil, nil, testNow())
	require.NotEmpty(t, recs)
	for _, r := range recs {
		if r.Goal.ID != "p" {
			continue
		}
		require.Len(t, r.SuggestedActions, 3)
		assert.Contains(t, r.SuggestedActions[0], "Create tasks")
		assert.Contains(t, r.SuggestedActions[1], "day(s) left")
		assert.Contains(t, r.SuggestedActions[2], "behind schedule")
	}
}

func TestSuggestedActions_PendingCount(t *testing.T) {
	g := newGoal("g1", "", LevelWeek, "2025-01-04", "2025-01-10")
	g.LinkedTaskIDs = []string{"t1", "t2", "t3"}
	plan := buildPlan(g)
	now := testNow()

	// t1 completed today, t2 present but unfinished, t3 not scheduled
	// today at all. Two tasks are pending.
	current := []Task{
		completionTask("t1", "g1", FormatDate(now)),
		{ID: "t2", Type: TaskCount, Target: Target{Value: 5}, LinkedGoalID: "g1"},
	}

	recs := Recommendations(&plan, nil, current, now)
	require.Len(t, recs, 1)
	require.NotEmpty(t, recs[0].SuggestedActions)
	assert.Equal(t, "Complete 2 pending task(s)", recs[0].SuggestedActions[0])
}

func TestTaskSuggestions_Levels(t *testing.T) {
	tests := []struct {
		level Level
		first string
	}{
		{LevelYear, "Plan the next quarter of goal g"},
		{LevelQuarter, "Break goal g into monthly milestones"},
		{LevelMonth, "Plan this week's work on goal g"},
		{LevelWeek, "Work on goal g"},
		{LevelDay, "Finish goal g"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			g := newGoal("g", "", tt.level, "2025-01-01", "2025-12-31")
			suggestions := TaskSuggestions(g)
			require.NotEmpty(t, suggestions)
			assert.Equal(t, tt.first, suggestions[0])
			assert.LessOrEqual(t, len(suggestions), 4)
		})
	}
}

func TestTaskSuggestions_Keywords(t *testing.T) {
	g := newGoal("g", "", LevelWeek, "2025-01-01", "2025-01-07")
	g.Description = "Learn the basics and build a demo"

	suggestions := TaskSuggestions(g)
	require.Len(t, suggestions, 4)
	assert.Equal(t, "Study session: goal g", suggestions[0], "learning keyword prepends")
	assert.Equal(t, "Work on goal g", suggestions[1])
	assert.Equal(t, "Wrap up goal g", suggestions[2])
	assert.Equal(t, "Build the next piece of goal g", suggestions[3])
}

func TestTaskSuggestions_CapDropsOverflow(t *testing.T) {
	g := newGoal("g", "", LevelYear, "2025-01-01", "2025-12-31")
	g.Description = "study hard, build things, write it all down"

	suggestions := TaskSuggestions(g)
	require.Len(t, suggestions, 4)
	assert.Equal(t, "Study session: goal g", suggestions[0])
	assert.NotContains(t, suggestions, "Write up notes for goal g")
}
