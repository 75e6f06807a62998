package planner

// Mutators in this file are total functions over well-formed plans: each
// one computes and returns a brand-new plan in a single pass, so callers
// never observe a half-applied change. Referential validation (date
// containment against the parent, level ordering, id uniqueness) is the
// caller's job; the mutators only guard against double-insertion.

// CreateGoal appends g to the plan. A parentless year goal is registered
// as an additional root; a goal with a parent is appended to that
// parent's child list. Both registrations are idempotent.
func CreateGoal(p GoalPlan, g Goal) GoalPlan {
	out := clonePlan(p)
	out.Goals = append(out.Goals, cloneGoal(g))

	if g.Level == LevelYear && g.ParentID == "" && !containsID(out.YearGoalIDs, g.ID) {
		out.YearGoalIDs = append(out.YearGoalIDs, g.ID)
	}
	if g.ParentID != "" {
		for i := range out.Goals {
			if out.Goals[i].ID == g.ParentID && !containsID(out.Goals[i].ChildIDs, g.ID) {
				out.Goals[i].ChildIDs = append(out.Goals[i].ChildIDs, g.ID)
				break
			}
		}
	}
	return out
}

// UpdateGoal replaces the goal with g's id. Hierarchy linkage is
// immutable after creation: the stored ParentID and ChildIDs are kept
// regardless of what g carries, so a goal can never be re-parented
// through an edit. An unknown id is a no-op.
func UpdateGoal(p GoalPlan, g Goal) GoalPlan {
	out := clonePlan(p)
	for i := range out.Goals {
		if out.Goals[i].ID != g.ID {
			continue
		}
		replacement := cloneGoal(g)
		replacement.ParentID = out.Goals[i].ParentID
		replacement.ChildIDs = out.Goals[i].ChildIDs
		out.Goals[i] = replacement
		break
	}
	return out
}

// DeleteGoal removes goalID and its entire subtree in one pass, then
// purges every removed id from the surviving goals' child lists and from
// the plan's root list. No intermediate state is ever observable.
func DeleteGoal(p GoalPlan, goalID string) GoalPlan {
	removed := map[string]bool{goalID: true}
	for _, d := range Descendants(&p, goalID) {
		removed[d.ID] = true
	}

	out := clonePlan(p)
	kept := out.Goals[:0]
	for _, g := range out.Goals {
		if removed[g.ID] {
			continue
		}
		g.ChildIDs = pruneIDs(g.ChildIDs, removed)
		kept = append(kept, g)
	}
	out.Goals = kept
	out.YearGoalIDs = pruneIDs(out.YearGoalIDs, removed)
	return out
}

func pruneIDs(ids []string, drop map[string]bool) []string {
	kept := ids[:0]
	for _, id := range ids {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept
}
