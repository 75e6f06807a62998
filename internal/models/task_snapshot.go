package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskSnapshot holds one user's current-day tasks as a JSON blob. There
// is a single row per user, replaced wholesale on every save; past days
// live in DayArchiveRecord instead.
type TaskSnapshot struct {
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	Data      string    `json:"-" gorm:"type:text"`
	UpdatedAt time.Time `json:"updatedAt"`
}
