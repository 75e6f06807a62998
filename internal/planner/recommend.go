package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Urgency ranks how badly a goal needs attention.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

func urgencyRank(u Urgency) int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	default:
		return 2
	}
}

// Recommendation is one entry of the attention list shown to the user.
// ProgressGap is expected minus actual and can be negative for a goal
// that is ahead but ending soon.
type Recommendation struct {
	Goal             Goal     `json:"goal"`
	Urgency          Urgency  `json:"urgency"`
	ProgressGap      int      `json:"progressGap"`
	DaysRemaining    int      `json:"daysRemaining"`
	SuggestedActions []string `json:"suggestedActions"`
}

const (
	maxSuggestedActions = 3
	maxTaskSuggestions  = 4
	endingSoonDays      = 7
)

// daysUntilEnd returns the whole days from now until the goal's end
// date. The boolean is false when the end date does not parse.
func daysUntilEnd(g Goal, now time.Time) (int, bool) {
	end, ok := ParseDate(g.EndDate)
	if !ok {
		return 0, false
	}
	return daysBetween(now, end), true
}

// GoalsNeedingAttention flags every non-completed goal that is either
// ending within the next seven days or behind its expected progress by
// at least the schedule tolerance.
func GoalsNeedingAttention(p *GoalPlan, archive []DayArchive, current []Task, now time.Time) []Goal {
	var out []Goal
	for _, g := range p.Goals {
		if g.Status == StatusCompleted {
			continue
		}
		endingSoon := false
		if days, ok := daysUntilEnd(g, now); ok {
			endingSoon = days >= 0 && days <= endingSoonDays
		}
		behind := ExpectedProgress(g, now)-ActualProgress(p, g.ID, archive, current, now) >= ScheduleTolerance
		if endingSoon || behind {
			out = append(out, g)
		}
	}
	return out
}

// Recommendations builds the prioritized attention list: urgency tier by
// deadline pressure and progress gap, up to three suggested next
// actions, sorted by tier and then by soonest deadline. The sort is
// stable, so equally urgent goals keep plan order.
func Recommendations(p *GoalPlan, archive []DayArchive, current []Task, now time.Time) []Recommendation {
	flagged := GoalsNeedingAttention(p, archive, current, now)

	recs := make([]Recommendation, 0, len(flagged))
	for _, g := range flagged {
		actual := ActualProgress(p, g.ID, archive, current, now)
		expected := ExpectedProgress(g, now)
		gap := expected - actual
		days, _ := daysUntilEnd(g, now)

		var urgency Urgency
		switch {
		case days <= 2 || gap >= 30:
			urgency = UrgencyCritical
		case days <= endingSoonDays || gap >= 20:
			urgency = UrgencyHigh
		default:
			urgency = UrgencyMedium
		}

		recs = append(recs, Recommendation{
			Goal:             g,
			Urgency:          urgency,
			ProgressGap:      gap,
			DaysRemaining:    days,
			SuggestedActions: suggestedActions(p, g, current, days, gap, now),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := urgencyRank(recs[i].Urgency), urgencyRank(recs[j].Urgency)
		if ri != rj {
			return ri < rj
		}
		return recs[i].DaysRemaining < recs[j].DaysRemaining
	})
	return recs
}

// suggestedActions generates up to three next actions in a fixed order:
// task work first, then time pressure, then gap magnitude, then
// unfinished children.
func suggestedActions(p *GoalPlan, g Goal, current []Task, days, gap int, now time.Time) []string {
	var actions []string

	if len(g.LinkedTaskIDs) == 0 {
		actions = append(actions, "Create tasks to start making progress on this goal")
	} else if pending := pendingLinkedTasks(g, current, now); pending > 0 {
		actions = append(actions, fmt.Sprintf("Complete %d pending task(s)", pending))
	}
	if days <= endingSoonDays {
		actions = append(actions, fmt.Sprintf("Only %d day(s) left - focus on this goal now", days))
	}
	if gap >= 20 {
		actions = append(actions, "Well behind schedule - consider narrowing scope or moving the deadline")
	}
	if n := incompleteChildren(p, g.ID); n > 0 {
		actions = append(actions, fmt.Sprintf("Review %d unfinished child goal(s)", n))
	}

	if len(actions) > maxSuggestedActions {
		actions = actions[:maxSuggestedActions]
	}
	return actions
}

// pendingLinkedTasks counts the goal's directly linked tasks that are
// not completed today. A linked task absent from the current snapshot is
// pending too: it exists but was not scheduled today.
func pendingLinkedTasks(g Goal, current []Task, now time.Time) int {
	done := make(map[string]bool, len(current))
	for _, t := range current {
		if TaskDone(t, now) {
			done[t.ID] = true
		}
	}
	pending := 0
	for _, id := range g.LinkedTaskIDs {
		if !done[id] {
			pending++
		}
	}
	return pending
}

func incompleteChildren(p *GoalPlan, goalID string) int {
	n := 0
	for _, child := range Children(p, goalID) {
		if child.Status != StatusCompleted {
			n++
		}
	}
	return n
}

// TaskSuggestions proposes up to four task names for a goal: a study
// suggestion first when the description mentions learning, then
// level-appropriate templates, then building and writing suggestions
// keyed off the description.
func TaskSuggestions(g Goal) []string {
	desc := strings.ToLower(g.Description)
	var out []string

	if strings.Contains(desc, "learn") || strings.Contains(desc, "study") {
		out = append(out, "Study session: "+g.Title)
	}

	switch g.Level {
	case LevelYear:
		out = append(out, "Plan the next quarter of "+g.Title, "Review progress on "+g.Title)
	case LevelQuarter:
		out = append(out, "Break "+g.Title+" into monthly milestones", "Review progress on "+g.Title)
	case LevelMonth:
		out = append(out, "Plan this week's work on "+g.Title, "Review progress on "+g.Title)
	case LevelWeek:
		out = append(out, "Work on "+g.Title, "Wrap up "+g.Title)
	case LevelDay:
		out = append(out, "Finish "+g.Title)
	}

	if strings.Contains(desc, "build") || strings.Contains(desc, "create") {
		out = append(out, "Build the next piece of "+g.Title)
	}
	if strings.Contains(desc, "write") || strings.Contains(desc, "document") {
		out = append(out, "Write up notes for "+g.Title)
	}

	if len(out) > maxTaskSuggestions {
		out = out[:maxTaskSuggestions]
	}
	return out
}
