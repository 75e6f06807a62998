package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ivy/goalplan-api/internal/middleware"
	"github.com/ivy/goalplan-api/internal/models"
	"github.com/ivy/goalplan-api/internal/planner"
)

// loadPlanAndGoal resolves the :id plan and the :goalId goal inside it.
func loadPlanAndGoal(c *fiber.Ctx) (*models.PlanRecord, planner.GoalPlan, planner.Goal, error) {
	record, plan, err := loadPlan(c)
	if err != nil {
		return nil, planner.GoalPlan{}, planner.Goal{}, err
	}

	goal, ok := planner.FindGoal(&plan, c.Params("goalId"))
	if !ok {
		return nil, planner.GoalPlan{}, planner.Goal{}, fiber.NewError(fiber.StatusNotFound, "Goal not found")
	}

	return record, plan, goal, nil
}

// validateGoalDates is the editor-side gate the planner core relies on:
// dates must parse, start must not follow end, and a child window must
// sit inside its parent's window. Returns an empty string when valid.
func validateGoalDates(plan *planner.GoalPlan, parentID, startDate, endDate string) string {
	start, ok := planner.ParseDate(startDate)
	if !ok {
		return "startDate must be YYYY-MM-DD"
	}
	end, ok := planner.ParseDate(endDate)
	if !ok {
		return "endDate must be YYYY-MM-DD"
	}
	if start.After(end) {
		return "startDate must not be after endDate"
	}

	if parentID != "" {
		parent, ok := planner.FindGoal(plan, parentID)
		if !ok {
			return "Parent goal not found"
		}
		pStart, okS := planner.ParseDate(parent.StartDate)
		pEnd, okE := planner.ParseDate(parent.EndDate)
		if okS && okE && (start.Before(pStart) || end.After(pEnd)) {
			return "Goal dates must fall within the parent goal's dates"
		}
	}
	return ""
}

// propagateAndSave recomputes progress from goalID up to the root and
// persists the plan. Persistence happens strictly after the in-memory
// plan is final.
func propagateAndSave(c *fiber.Ctx, record *models.PlanRecord, plan planner.GoalPlan, goalID string) (planner.GoalPlan, error) {
	userID := middleware.GetUserID(c)
	archives := loadArchives(userID)
	current := loadCurrentTasks(userID)

	plan = planner.UpdateGoalProgress(plan, goalID, archives, current, time.Now())
	if err := savePlan(record, plan); err != nil {
		return plan, fiber.NewError(fiber.StatusInternalServerError, "Failed to save plan")
	}
	return plan, nil
}

func CreateGoal(c *fiber.Ctx) error {
	record, plan, err := loadPlan(c)
	if err != nil {
		return err
	}

	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	level := planner.Level(req.Level)
	if !planner.ValidLevel(level) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown goal level: " + req.Level,
		})
	}
	if req.ParentID != "" {
		parent, ok := planner.FindGoal(&plan, req.ParentID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Parent goal not found",
			})
		}
		if planner.LevelRank(level) <= planner.LevelRank(parent.Level) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Child goal level must be finer than the parent's",
			})
		}
	}
	if msg := validateGoalDates(&plan, req.ParentID, req.StartDate, req.EndDate); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	now := time.Now()
	goal := planner.Goal{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Level:        level,
		ParentID:     req.ParentID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       planner.StatusNotStarted,
		Order:        req.Order,
		AIGenerated:  req.AIGenerated,
		AIContext:    req.AIContext,
		CustomFields: req.CustomFields,
		CreatedAt:    now.UnixMilli(),
		UpdatedAt:    now.UnixMilli(),
	}

	plan = planner.CreateGoal(plan, goal)
	plan.UpdatedAt = now.UnixMilli()

	plan, err = propagateAndSave(c, record, plan, goal.ID)
	if err != nil {
		return err
	}

	created, _ := planner.FindGoal(&plan, goal.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func UpdateGoal(c *fiber.Ctx) error {
	record, plan, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.StartDate != nil {
		goal.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		goal.EndDate = *req.EndDate
	}
	if req.Status != nil {
		status := planner.GoalStatus(*req.Status)
		if !planner.ValidStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown goal status: " + *req.Status,
			})
		}
		goal.Status = status
	}
	if req.Order != nil {
		goal.Order = *req.Order
	}
	if req.AIContext != nil {
		goal.AIContext = *req.AIContext
	}
	if req.CustomFields != nil {
		goal.CustomFields = *req.CustomFields
	}

	if goal.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if msg := validateGoalDates(&plan, goal.ParentID, goal.StartDate, goal.EndDate); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	goal.UpdatedAt = time.Now().UnixMilli()
	plan = planner.UpdateGoal(plan, goal)

	plan, err = propagateAndSave(c, record, plan, goal.ID)
	if err != nil {
		return err
	}

	updated, _ := planner.FindGoal(&plan, goal.ID)
	return c.JSON(updated)
}

func DeleteGoal(c *fiber.Ctx) error {
	record, plan, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	removed := 1 + len(planner.Descendants(&plan, goal.ID))
	plan = planner.DeleteGoal(plan, goal.ID)
	plan.UpdatedAt = time.Now().UnixMilli()

	// Recompute the surviving ancestors now that the subtree's linked
	// tasks no longer count toward them.
	if goal.ParentID != "" {
		if _, ok := planner.FindGoal(&plan, goal.ParentID); ok {
			if plan, err = propagateAndSave(c, record, plan, goal.ParentID); err != nil {
				return err
			}
			return c.JSON(fiber.Map{"deleted": removed})
		}
	}

	if err := savePlan(record, plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save plan",
		})
	}
	return c.JSON(fiber.Map{"deleted": removed})
}

// LinkTask attaches a day task to the goal. The task keeps living in the
// day subsystem; the goal only remembers the id.
func LinkTask(c *fiber.Ctx) error {
	record, plan, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	var req models.LinkTaskRequest
	if err := c.BodyParser(&req); err != nil || req.TaskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "taskId is required",
		})
	}

	// A task belongs to at most one goal. Re-linking to the same goal is
	// a no-op; a link held by a sibling has to be released first.
	if owner, ok := planner.TaskLinkOwner(&plan, req.TaskID); ok && owner != goal.ID {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Task is already linked to another goal",
		})
	} else if !ok {
		goal.LinkedTaskIDs = append(goal.LinkedTaskIDs, req.TaskID)
		goal.UpdatedAt = time.Now().UnixMilli()
		plan = planner.UpdateGoal(plan, goal)
	}

	plan, err = propagateAndSave(c, record, plan, goal.ID)
	if err != nil {
		return err
	}

	updated, _ := planner.FindGoal(&plan, goal.ID)
	return c.JSON(updated)
}

// UnlinkTask detaches a day task from the goal. Unknown task ids are a
// no-op.
func UnlinkTask(c *fiber.Ctx) error {
	record, plan, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	taskID := c.Params("taskId")
	kept := make([]string, 0, len(goal.LinkedTaskIDs))
	for _, id := range goal.LinkedTaskIDs {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	goal.LinkedTaskIDs = kept
	goal.UpdatedAt = time.Now().UnixMilli()
	plan = planner.UpdateGoal(plan, goal)

	plan, err = propagateAndSave(c, record, plan, goal.ID)
	if err != nil {
		return err
	}

	updated, _ := planner.FindGoal(&plan, goal.ID)
	return c.JSON(updated)
}

// GetGoalProgress reports actual vs expected progress and the resulting
// schedule status for one goal.
func GetGoalProgress(c *fiber.Ctx) error {
	_, plan, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	userID := middleware.GetUserID(c)
	now := time.Now()
	actual := planner.ActualProgress(&plan, goal.ID, loadArchives(userID), loadCurrentTasks(userID), now)
	expected := planner.ExpectedProgress(goal, now)

	return c.JSON(fiber.Map{
		"goalId":   goal.ID,
		"actual":   actual,
		"expected": expected,
		"status":   planner.ProgressStatus(actual, expected),
	})
}

// GetGoalPath renders the goal's ancestry as a " > "-joined title path.
func GetGoalPath(c *fiber.Ctx) error {
	_, plan, goal, err := loadPlanAndGoal(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"goalId": goal.ID,
		"path":   planner.PathToRoot(&plan, goal.ID),
	})
}
