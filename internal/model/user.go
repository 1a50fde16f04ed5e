package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultAvatar = "default_avatar.png"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
	Avatar       string    `gorm:"type:text;not null;default:default_avatar.png" json:"avatar"`

	// Progression fields. Mutated only through the progression service.
	Exp                 int               `gorm:"not null;default:0" json:"exp"`
	StreakLastCompleted *time.Time        `json:"streak_last_completed,omitempty"`
	StreakCurrentStreak int               `gorm:"not null;default:0" json:"streak_current_streak"`
	Badges              []Badge           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"badges,omitempty"`
	QuestHistory        []QuestCompletion `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"quest_history,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Badge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	BadgeID   string    `gorm:"size:50;not null" json:"badge_id"`
	AwardedAt time.Time `gorm:"not null" json:"awarded_at"`
}

// QuestCompletion rows are append-only: there is no update or delete path.
type QuestCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	QuestID     string    `gorm:"size:36;not null" json:"quest_id"`
	ExpEarned   int       `gorm:"not null" json:"exp_earned"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
