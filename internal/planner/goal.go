// Package planner holds the goal-hierarchy core: the plan data model,
// invariant-preserving mutators, tree queries, progress computation and
// recommendation ranking. Everything in this package is a pure function
// over snapshots passed in by the caller; persistence and HTTP live in
// the surrounding layers.
package planner

// Level is the time horizon of a goal, strictly ordered from coarsest
// (year) to finest (day).
type Level string

const (
	LevelYear    Level = "year"
	LevelQuarter Level = "quarter"
	LevelMonth   Level = "month"
	LevelWeek    Level = "week"
	LevelDay     Level = "day"
)

// LevelRank returns the position of a level in the year..day ordering,
// or -1 for an unknown level.
func LevelRank(l Level) int {
	switch l {
	case LevelYear:
		return 0
	case LevelQuarter:
		return 1
	case LevelMonth:
		return 2
	case LevelWeek:
		return 3
	case LevelDay:
		return 4
	default:
		return -1
	}
}

// ValidLevel reports whether l is one of the five known levels.
func ValidLevel(l Level) bool {
	return LevelRank(l) >= 0
}

// GoalStatus is the user-set lifecycle state of a goal. It is never
// derived from progress numbers.
type GoalStatus string

const (
	StatusNotStarted GoalStatus = "not-started"
	StatusInProgress GoalStatus = "in-progress"
	StatusCompleted  GoalStatus = "completed"
	StatusAbandoned  GoalStatus = "abandoned"
)

// ValidStatus reports whether s is one of the known goal statuses.
func ValidStatus(s GoalStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Goal is a single time-boxed node in a plan's goal forest.
//
// ParentID/ChildIDs carry the hierarchy and must stay bidirectionally
// consistent; CustomConnectionIDs are advisory extra edges for the UI and
// never enter hierarchy or progress math. CompletionPercentage is a cached
// value maintained by UpdateGoalProgress and not authoritative between
// recomputations.
type Goal struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description,omitempty"`
	Level                Level          `json:"level"`
	ParentID             string         `json:"parentId,omitempty"`
	ChildIDs             []string       `json:"childIds,omitempty"`
	LinkedTaskIDs        []string       `json:"linkedTaskIds,omitempty"`
	CustomConnectionIDs  []string       `json:"customConnectionIds,omitempty"`
	StartDate            string         `json:"startDate"`
	EndDate              string         `json:"endDate"`
	Status               GoalStatus     `json:"status"`
	CompletionPercentage int            `json:"completionPercentage"`
	Order                int            `json:"order"`
	AIGenerated          bool           `json:"aiGenerated,omitempty"`
	AIContext            string         `json:"aiContext,omitempty"`
	CustomFields         map[string]any `json:"customFields,omitempty"`
	CreatedAt            int64          `json:"createdAt"`
	UpdatedAt            int64          `json:"updatedAt"`
}

// GoalPlan is a forest of goals with its denormalized flat goal list.
// The plan is the sole owner of goal lifetime. YearGoalIDs lists the
// root goals in display order; a plan may have several independent roots.
type GoalPlan struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	YearGoalIDs []string `json:"yearGoalIds,omitempty"`
	Goals       []Goal   `json:"goals"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

func cloneGoal(g Goal) Goal {
	out := g
	out.ChildIDs = append([]string(nil), g.ChildIDs...)
	out.LinkedTaskIDs = append([]string(nil), g.LinkedTaskIDs...)
	out.CustomConnectionIDs = append([]string(nil), g.CustomConnectionIDs...)
	if g.CustomFields != nil {
		out.CustomFields = make(map[string]any, len(g.CustomFields))
		for k, v := range g.CustomFields {
			out.CustomFields[k] = v
		}
	}
	return out
}

func clonePlan(p GoalPlan) GoalPlan {
	out := p
	out.YearGoalIDs = append([]string(nil), p.YearGoalIDs...)
	out.Goals = make([]Goal, len(p.Goals))
	for i, g := range p.Goals {
		out.Goals[i] = cloneGoal(g)
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
