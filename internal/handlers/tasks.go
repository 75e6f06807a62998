package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ivy/goalplan-api/internal/database"
	"github.com/ivy/goalplan-api/internal/middleware"
	"github.com/ivy/goalplan-api/internal/models"
	"github.com/ivy/goalplan-api/internal/planner"
)

// loadCurrentTasks returns the user's current-day task snapshot, or nil
// when none has been stored yet. A snapshot that fails to decode is
// treated as absent; progress then degrades to archive-only counting.
func loadCurrentTasks(userID uuid.UUID) []planner.Task {
	var snapshot models.TaskSnapshot
	if err := database.DB.First(&snapshot, "user_id = ?", userID).Error; err != nil {
		return nil
	}
	var tasks []planner.Task
	if err := json.Unmarshal([]byte(snapshot.Data), &tasks); err != nil {
		return nil
	}
	return tasks
}

func GetTodayTasks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	tasks := loadCurrentTasks(userID)
	if tasks == nil {
		tasks = []planner.Task{}
	}
	return c.JSON(tasks)
}

// refreshLinkedPlans recomputes the cached progress in every plan of the
// user containing one of the affected goals and writes the changed plans
// back. Task mutations happen outside any plan request, so without this
// the stored completionPercentage values would sit stale until the next
// goal edit. Failures are logged; the task mutation itself already
// succeeded.
func refreshLinkedPlans(userID uuid.UUID, goalIDs []string) {
	if len(goalIDs) == 0 {
		return
	}

	archives := loadArchives(userID)
	current := loadCurrentTasks(userID)
	now := time.Now()

	var records []models.PlanRecord
	if err := database.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		log.Println("Failed to load plans for progress refresh:", err)
		return
	}

	for i := range records {
		record := &records[i]
		if record.Data == "" {
			continue
		}
		var plan planner.GoalPlan
		if err := json.Unmarshal([]byte(record.Data), &plan); err != nil {
			continue
		}
		plan.IsActive = record.IsActive

		refreshed, changed := planner.RefreshProgress(plan, goalIDs, archives, current, now)
		if !changed {
			continue
		}
		if err := savePlan(record, refreshed); err != nil {
			log.Println("Failed to refresh plan progress:", err)
		}
	}
}

// linkedGoalIDs collects the distinct goal ids the given tasks point at,
// in first-seen order.
func linkedGoalIDs(tasks []planner.Task) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tasks {
		if t.LinkedGoalID == "" || seen[t.LinkedGoalID] {
			continue
		}
		seen[t.LinkedGoalID] = true
		out = append(out, t.LinkedGoalID)
	}
	return out
}

// PutTodayTasks replaces the user's current-day task snapshot wholesale.
// The whole payload is validated before anything is stored; a single bad
// task rejects the load.
func PutTodayTasks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var tasks []planner.Task
	if err := c.BodyParser(&tasks); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	for _, t := range tasks {
		if t.ID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Every task needs an id",
			})
		}
		if !planner.ValidTaskType(t.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown task type: " + string(t.Type),
			})
		}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store tasks",
		})
	}

	// Goals linked from the outgoing snapshot need a recompute too: a
	// task that disappears from the day changes its goal's counts.
	previous := loadCurrentTasks(userID)

	snapshot := models.TaskSnapshot{
		UserID:    userID,
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	if err := database.DB.Save(&snapshot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store tasks",
		})
	}

	refreshLinkedPlans(userID, linkedGoalIDs(append(previous, tasks...)))

	return c.JSON(tasks)
}
