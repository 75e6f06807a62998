package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ivy/goalplan-api/internal/database"
	"github.com/ivy/goalplan-api/internal/middleware"
	"github.com/ivy/goalplan-api/internal/models"
	"github.com/ivy/goalplan-api/internal/planner"
	"gorm.io/gorm"
)

// loadPlan resolves the :id route param to the authenticated user's plan
// record and decodes its body. A record that fails to decode is rejected
// wholesale rather than patched field by field.
func loadPlan(c *fiber.Ctx) (*models.PlanRecord, planner.GoalPlan, error) {
	userID := middleware.GetUserID(c)
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, planner.GoalPlan{}, fiber.NewError(fiber.StatusBadRequest, "Invalid plan ID")
	}

	var record models.PlanRecord
	if err := database.DB.Where("id = ? AND user_id = ?", planID, userID).First(&record).Error; err != nil {
		return nil, planner.GoalPlan{}, fiber.NewError(fiber.StatusNotFound, "Plan not found")
	}

	var plan planner.GoalPlan
	if record.Data != "" {
		if err := json.Unmarshal([]byte(record.Data), &plan); err != nil {
			return nil, planner.GoalPlan{}, fiber.NewError(fiber.StatusInternalServerError, "Stored plan is corrupted")
		}
	}
	// The is_active column is authoritative for the whole plan body.
	plan.IsActive = record.IsActive
	return &record, plan, nil
}

// savePlan serializes the plan back into its record and refreshes the
// denormalized index columns.
func savePlan(record *models.PlanRecord, plan planner.GoalPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	record.Data = string(data)
	record.Title = plan.Title
	record.YearGoalTitle = yearGoalTitle(&plan)
	return database.DB.Save(record).Error
}

// yearGoalTitle is the title of the plan's first root goal, used for
// plan listings.
func yearGoalTitle(plan *planner.GoalPlan) string {
	for _, id := range plan.YearGoalIDs {
		if g, ok := planner.FindGoal(plan, id); ok {
			return g.Title
		}
	}
	return ""
}

func GetPlans(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var records []models.PlanRecord
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch plans",
		})
	}

	summaries := make([]models.PlanSummary, len(records))
	for i, r := range records {
		summaries[i] = models.PlanSummary{
			ID:            r.ID,
			Title:         r.Title,
			YearGoalTitle: r.YearGoalTitle,
			IsActive:      r.IsActive,
			CreatedAt:     r.CreatedAt,
		}
	}

	return c.JSON(summaries)
}

func GetPlan(c *fiber.Ctx) error {
	_, plan, err := loadPlan(c)
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

func CreatePlan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreatePlanRequest
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

	now := time.Now()
	record := models.PlanRecord{
		ID:     uuid.New(),
		UserID: userID,
		Title:  req.Title,
	}
	plan := planner.GoalPlan{
		ID:        record.ID.String(),
		Title:     req.Title,
		Goals:     []planner.Goal{},
		CreatedAt: now.UnixMilli(),
		UpdatedAt: now.UnixMilli(),
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create plan",
		})
	}
	record.Data = string(data)

	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create plan",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func UpdatePlan(c *fiber.Ctx) error {
	record, plan, err := loadPlan(c)
	if err != nil {
		return err
	}

	var req models.UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil && *req.Title != "" {
		plan.Title = *req.Title
		plan.UpdatedAt = time.Now().UnixMilli()
	}

	if err := savePlan(record, plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update plan",
		})
	}

	return c.JSON(plan)
}

func DeletePlan(c *fiber.Ctx) error {
	record, _, err := loadPlan(c)
	if err != nil {
		return err
	}

	if err := database.DB.Delete(record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete plan",
		})
	}

	return c.JSON(fiber.Map{"deleted": true})
}

// ActivatePlan makes the addressed plan the user's single active plan,
// flipping the flag off every sibling in the same transaction.
func ActivatePlan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	record, _, err := loadPlan(c)
	if err != nil {
		return err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PlanRecord{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(record).Update("is_active", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to activate plan",
		})
	}

	return c.JSON(fiber.Map{"id": record.ID, "isActive": true})
}
