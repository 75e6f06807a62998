package planner

import (
	"math"
	"time"
)

// ScheduleTolerance is the dead zone, in percentage points, between
// actual and expected progress inside which a goal counts as on-track.
// The same band decides when a goal needs attention, so status and
// recommendations can never disagree about "behind".
const ScheduleTolerance = 10

// ProgressState classifies actual vs expected progress.
type ProgressState string

const (
	ProgressAhead   ProgressState = "ahead"
	ProgressOnTrack ProgressState = "on-track"
	ProgressBehind  ProgressState = "behind"
)

// subtreeScope is the goal plus all of its descendants, as an id set.
func subtreeScope(p *GoalPlan, goalID string) map[string]bool {
	scope := map[string]bool{goalID: true}
	for _, d := range Descendants(p, goalID) {
		scope[d.ID] = true
	}
	return scope
}

// ActualProgress is the percentage of linked tasks completed across the
// goal's entire subtree. Archived tasks are counted by their frozen
// completed flag; current-day tasks re-evaluate the type-specific
// completion rule because they are still mutable. Every task counts
// equally regardless of goal level or task size. A subtree with no
// linked tasks anywhere reports 0.
func ActualProgress(p *GoalPlan, goalID string, archive []DayArchive, current []Task, now time.Time) int {
	scope := subtreeScope(p, goalID)

	total, done := 0, 0
	for _, day := range archive {
		for _, t := range day.Tasks {
			if t.LinkedGoalID == "" || !scope[t.LinkedGoalID] {
				continue
			}
			total++
			if t.Completed {
				done++
			}
		}
	}
	for _, t := range current {
		if t.LinkedGoalID == "" || !scope[t.LinkedGoalID] {
			continue
		}
		total++
		if TaskDone(t, now) {
			done++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// ExpectedProgress is the percentage of the goal's calendar window
// elapsed as of now, independent of task completion. The window is
// inclusive on both ends, so a seven-day week counts seven days. Before
// the window it is 0, after it 100; malformed dates report 0.
func ExpectedProgress(g Goal, now time.Time) int {
	start, ok := ParseDate(g.StartDate)
	if !ok {
		return 0
	}
	end, ok := ParseDate(g.EndDate)
	if !ok {
		return 0
	}

	today := dateOf(now)
	if today.Before(start) {
		return 0
	}
	if today.After(end) {
		return 100
	}

	elapsed := daysBetween(start, today)
	total := daysBetween(start, end) + 1
	return int(math.Round(100 * float64(elapsed) / float64(total)))
}

// ProgressStatus compares actual against expected progress with the
// ScheduleTolerance dead zone, so small fluctuations never flip the
// status back and forth.
func ProgressStatus(actual, expected int) ProgressState {
	switch diff := actual - expected; {
	case diff >= ScheduleTolerance:
		return ProgressAhead
	case diff <= -ScheduleTolerance:
		return ProgressBehind
	default:
		return ProgressOnTrack
	}
}
