package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ivy/goalplan-api/internal/middleware"
	"github.com/ivy/goalplan-api/internal/planner"
)

// GetRecommendations returns the prioritized attention list for a plan:
// goals behind schedule or ending soon, ranked by urgency, each with
// suggested next actions.
func GetRecommendations(c *fiber.Ctx) error {
	_, plan, err := loadPlan(c)
	if err != nil {
		return err
	}

	userID := middleware.GetUserID(c)
	recs := planner.Recommendations(&plan, loadArchives(userID), loadCurrentTasks(userID), time.Now())
	if recs == nil {
		recs = []planner.Recommendation{}
	}
	return c.JSON(recs)
}

// GetGoalsNeedingAttention returns the unranked set of flagged goals,
// for consumers that do their own ordering or dismissal filtering.
func GetGoalsNeedingAttention(c *fiber.Ctx) error {
	_, plan, err := loadPlan(c)
	if err != nil {
		return err
	}

	userID := middleware.GetUserID(c)
	goals := planner.GoalsNeedingAttention(&plan, loadArchives(userID), loadCurrentTasks(userID), time.Now())
	if goals == nil {
		goals = []planner.Goal{}
	}
	return c.JSON(goals)
}

// GetTaskSuggestions returns up to four suggested task names for a goal.
func GetTaskSuggestions(c *fiber.Ctx) error {
	_, _, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	suggestions := planner.TaskSuggestions(goal)
	if suggestions == nil {
		suggestions = []string{}
	}
	return c.JSON(fiber.Map{
		"goalId":      goal.ID,
		"suggestions": suggestions,
	})
}
