package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayArchiveRecord is a frozen snapshot of one past day's tasks for one
// user. Rows are append-only: the unique (user, date) index rejects a
// second archive for the same day, and nothing ever updates Data.
type DayArchiveRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_archive_user_date"`
	Date      string    `json:"date" gorm:"not null;uniqueIndex:idx_archive_user_date"`
	Data      string    `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d *DayArchiveRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
