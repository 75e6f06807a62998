package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ivy/goalplan-api/internal/handlers"
	"github.com/ivy/goalplan-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	plans := protected.Group("/plans")
	plans.Get("/", handlers.GetPlans)
	plans.Post("/", handlers.CreatePlan)
	plans.Get("/:id", handlers.GetPlan)
	plans.Put("/:id", handlers.UpdatePlan)
	plans.Delete("/:id", handlers.DeletePlan)
	plans.Post("/:id/activate", handlers.ActivatePlan)

	plans.Post("/:id/goals", handlers.CreateGoal)
	plans.Put("/:id/goals/:goalId", handlers.UpdateGoal)
	plans.Delete("/:id/goals/:goalId", handlers.DeleteGoal)
	plans.Post("/:id/goals/:goalId/link-task", handlers.LinkTask)
	plans.Delete("/:id/goals/:goalId/link-task/:taskId", handlers.UnlinkTask)

	plans.Get("/:id/goals/:goalId/progress", handlers.GetGoalProgress)
	plans.Get("/:id/goals/:goalId/path", handlers.GetGoalPath)
	plans.Get("/:id/goals/:goalId/suggestions", handlers.GetTaskSuggestions)

	plans.Get("/:id/attention", handlers.GetGoalsNeedingAttention)
	plans.Get("/:id/recommendations", handlers.GetRecommendations)

	// Current-day tasks and frozen day archives, owned by the day
	// subsystem but consumed by progress computation
	tasks := protected.Group("/tasks")
	tasks.Get("/today", handlers.GetTodayTasks)
	tasks.Put("/today", handlers.PutTodayTasks)

	archives := protected.Group("/archives")
	archives.Get("/", handlers.GetArchives)
	archives.Post("/", handlers.CreateArchive)
}
