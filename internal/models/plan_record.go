package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRecord stores one goal plan. The full plan is serialized verbatim
// into Data; title, year-goal title and active flag are denormalized
// into columns so plan listings never have to decode plan bodies.
type PlanRecord struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title         string         `json:"title" gorm:"not null"`
	YearGoalTitle string         `json:"yearGoalTitle"`
	IsActive      bool           `json:"isActive" gorm:"default:false"`
	Data          string         `json:"-" gorm:"type:text"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *PlanRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Plan DTOs
type CreatePlanRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdatePlanRequest struct {
	Title *string `json:"title"`
}

type PlanSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	YearGoalTitle string    `json:"yearGoalTitle"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}
