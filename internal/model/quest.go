package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuestTypePost = "post"
	QuestTypeFood = "food"

	RepeatNone    = "none"
	RepeatDaily   = "daily"
	RepeatWeekly  = "weekly"
	RepeatMonthly = "monthly"
)

// Quest is catalog reference data. The progression service reads it but never
// mutates it.
type Quest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	TargetCount int       `gorm:"not null" json:"target_count"`
	XPReward    int       `gorm:"not null;default:10" json:"xp_reward"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	Repeatable  string    `gorm:"size:20;not null;default:none" json:"repeatable"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
