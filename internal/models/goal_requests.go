package models

// Goal DTOs. Goals live inside a plan's serialized body rather than in
// their own table, so these carry plain strings; the handlers validate
// enum values and date containment before touching the plan.

type CreateGoalRequest struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	Level        string         `json:"level" validate:"required"`
	ParentID     string         `json:"parentId"`
	StartDate    string         `json:"startDate" validate:"required"`
	EndDate      string         `json:"endDate" validate:"required"`
	Order        int            `json:"order"`
	AIGenerated  bool           `json:"aiGenerated"`
	AIContext    string         `json:"aiContext"`
	CustomFields map[string]any `json:"customFields"`
}

type UpdateGoalRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	StartDate    *string         `json:"startDate"`
	EndDate      *string         `json:"endDate"`
	Status       *string         `json:"status"`
	Order        *int            `json:"order"`
	AIContext    *string         `json:"aiContext"`
	CustomFields *map[string]any `json:"customFields"`
}

type LinkTaskRequest struct {
	TaskID string `json:"taskId" validate:"required"`
}
