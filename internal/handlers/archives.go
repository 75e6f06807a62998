package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ivy/goalplan-api/internal/database"
	"github.com/ivy/goalplan-api/internal/middleware"
	"github.com/ivy/goalplan-api/internal/models"
	"github.com/ivy/goalplan-api/internal/planner"
)

// loadArchives returns the user's day archives in date order. Rows that
// fail to decode are skipped; a broken archive day undercounts progress
// rather than failing the request.
func loadArchives(userID uuid.UUID) []planner.DayArchive {
	var records []models.DayArchiveRecord
	if err := database.DB.Where("user_id = ?", userID).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil
	}

	archives := make([]planner.DayArchive, 0, len(records))
	for _, r := range records {
		var day planner.DayArchive
		if err := json.Unmarshal([]byte(r.Data), &day); err != nil {
			continue
		}
		archives = append(archives, day)
	}
	return archives
}

func GetArchives(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	archives := loadArchives(userID)
	if archives == nil {
		archives = []planner.DayArchive{}
	}
	return c.JSON(archives)
}

// CreateArchive appends one frozen day snapshot. Archives are
// append-only: a second snapshot for the same date is rejected and
// nothing ever updates an existing row.
func CreateArchive(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var day planner.DayArchive
	if err := c.BodyParser(&day); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if _, ok := planner.ParseDate(day.Date); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date must be YYYY-MM-DD",
		})
	}

	var existing models.DayArchiveRecord
	if err := database.DB.Where("user_id = ? AND date = ?", userID, day.Date).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Day already archived",
		})
	}

	data, err := json.Marshal(day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive day",
		})
	}

	record := models.DayArchiveRecord{
		UserID: userID,
		Date:   day.Date,
		Data:   string(data),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive day",
		})
	}

	// Freezing a day moves its tasks from the mutable snapshot into the
	// archive; every goal they point at gets its cached progress redone.
	seen := map[string]bool{}
	var goalIDs []string
	for _, t := range day.Tasks {
		if t.LinkedGoalID == "" || seen[t.LinkedGoalID] {
			continue
		}
		seen[t.LinkedGoalID] = true
		goalIDs = append(goalIDs, t.LinkedGoalID)
	}
	refreshLinkedPlans(userID, goalIDs)

	return c.Status(fiber.StatusCreated).JSON(day)
}
