package planner

import "time"

// UpdateGoalProgress recomputes the goal's actual progress and then
// walks one parent at a time up to the root, each step doing a full
// independent subtree recomputation over the already-updated plan. This
// is a deliberate full recompute rather than an incremental delta; goal
// trees stay small, so correctness wins over performance here.
//
// An unknown goal id returns the plan unchanged.
func UpdateGoalProgress(p GoalPlan, goalID string, archive []DayArchive, current []Task, now time.Time) GoalPlan {
	g, ok := FindGoal(&p, goalID)
	if !ok {
		return p
	}

	actual := ActualProgress(&p, goalID, archive, current, now)

	out := clonePlan(p)
	for i := range out.Goals {
		if out.Goals[i].ID == goalID {
			out.Goals[i].CompletionPercentage = actual
			out.Goals[i].UpdatedAt = now.UnixMilli()
			break
		}
	}

	if g.ParentID != "" {
		return UpdateGoalProgress(out, g.ParentID, archive, current, now)
	}
	return out
}

// RefreshProgress recomputes cached progress for every listed goal that
// exists in the plan, each propagating up to its root. Goal ids the plan
// does not contain are skipped. Reports whether anything was recomputed,
// so callers holding a persisted plan know whether to write it back.
//
// This is the entry point for task-side mutations: a task completion
// toggle or log happens outside any plan request, so the affected goal
// ids arrive as a batch here.
func RefreshProgress(p GoalPlan, goalIDs []string, archive []DayArchive, current []Task, now time.Time) (GoalPlan, bool) {
	changed := false
	for _, id := range goalIDs {
		if _, ok := FindGoal(&p, id); !ok {
			continue
		}
		p = UpdateGoalProgress(p, id, archive, current, now)
		changed = true
	}
	return p, changed
}
