package planner

import (
	"strings"
	"time"
)

// Read-only tree queries. All of them are fail-soft: an unknown id
// yields an empty result, a dangling reference is skipped, a broken
// parent chain simply ends the walk. These run continuously while the
// UI renders, so they must never panic on transient inconsistency.

// FindGoal looks up a goal by id. The boolean is false when the id has
// no match.
func FindGoal(p *GoalPlan, goalID string) (Goal, bool) {
	for _, g := range p.Goals {
		if g.ID == goalID {
			return g, true
		}
	}
	return Goal{}, false
}

// Children returns the direct children of goalID in child-list order,
// skipping ids that no longer resolve.
func Children(p *GoalPlan, goalID string) []Goal {
	g, ok := FindGoal(p, goalID)
	if !ok {
		return nil
	}
	out := make([]Goal, 0, len(g.ChildIDs))
	for _, id := range g.ChildIDs {
		if child, ok := FindGoal(p, id); ok {
			out = append(out, child)
		}
	}
	return out
}

// Ancestors walks the parent chain upward and returns it nearest-first.
// The walk stops at the first missing parent.
func Ancestors(p *GoalPlan, goalID string) []Goal {
	var out []Goal
	g, ok := FindGoal(p, goalID)
	if !ok {
		return nil
	}
	seen := map[string]bool{g.ID: true}
	for g.ParentID != "" {
		parent, ok := FindGoal(p, g.ParentID)
		if !ok || seen[parent.ID] {
			break
		}
		out = append(out, parent)
		seen[parent.ID] = true
		g = parent
	}
	return out
}

// Descendants returns the transitive closure of goalID's children. A
// visited set guards the expansion, so the query terminates even on a
// plan that somehow acquired a cycle.
func Descendants(p *GoalPlan, goalID string) []Goal {
	if _, ok := FindGoal(p, goalID); !ok {
		return nil
	}
	visited := map[string]bool{goalID: true}
	var out []Goal
	var expand func(id string)
	expand = func(id string) {
		for _, child := range Children(p, id) {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child)
			expand(child.ID)
		}
	}
	expand(goalID)
	return out
}

// GoalsAtLevel returns every goal of the given level in plan order.
func GoalsAtLevel(p *GoalPlan, level Level) []Goal {
	var out []Goal
	for _, g := range p.Goals {
		if g.Level == level {
			out = append(out, g)
		}
	}
	return out
}

// GoalsActiveOn returns every goal whose date window contains the given
// day.
func GoalsActiveOn(p *GoalPlan, now time.Time) []Goal {
	var out []Goal
	for _, g := range p.Goals {
		if windowContains(g, now) {
			out = append(out, g)
		}
	}
	return out
}

// GoalsInCurrentWeek returns the week-level goals active on the given
// day.
func GoalsInCurrentWeek(p *GoalPlan, now time.Time) []Goal {
	return activeAtLevel(p, LevelWeek, now)
}

// GoalsInCurrentMonth returns the month-level goals active on the given
// day.
func GoalsInCurrentMonth(p *GoalPlan, now time.Time) []Goal {
	return activeAtLevel(p, LevelMonth, now)
}

// GoalsInCurrentQuarter returns the quarter-level goals active on the
// given day.
func GoalsInCurrentQuarter(p *GoalPlan, now time.Time) []Goal {
	return activeAtLevel(p, LevelQuarter, now)
}

func activeAtLevel(p *GoalPlan, level Level, now time.Time) []Goal {
	var out []Goal
	for _, g := range p.Goals {
		if g.Level == level && windowContains(g, now) {
			out = append(out, g)
		}
	}
	return out
}

// TaskLinkOwner returns the id of the goal whose LinkedTaskIDs lists
// taskID. A task links to at most one goal, so the first match wins;
// the boolean is false when no goal lists the task.
func TaskLinkOwner(p *GoalPlan, taskID string) (string, bool) {
	for _, g := range p.Goals {
		if containsID(g.LinkedTaskIDs, taskID) {
			return g.ID, true
		}
	}
	return "", false
}

// PathToRoot renders the goal's ancestry as "Root > ... > Goal". An
// unknown id yields the empty string.
func PathToRoot(p *GoalPlan, goalID string) string {
	g, ok := FindGoal(p, goalID)
	if !ok {
		return ""
	}
	ancestors := Ancestors(p, goalID)
	titles := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		titles = append(titles, ancestors[i].Title)
	}
	titles = append(titles, g.Title)
	return strings.Join(titles, " > ")
}
