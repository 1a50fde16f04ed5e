package bootstrap

import (
	"context"
	"log"

	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Badge{},
		&model.Quest{},
		&model.QuestCompletion{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
		&model.Notification{},
	)
}

// SeedQuests populates the quest catalog on first boot. The catalog is
// reference data; an already-populated catalog is left untouched.
func SeedQuests(ctx context.Context, quests repository.QuestRepository) error {
	count, err := quests.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultQuests := []model.Quest{
		{
			Title:       "Share a healthy meal",
			Description: "Post a photo of one of your meals today",
			Type:        model.QuestTypeFood,
			TargetCount: 1,
			XPReward:    10,
			Repeatable:  model.RepeatDaily,
		},
		{
			Title:       "Post an update",
			Description: "Tell the community what you did for your health today",
			Type:        model.QuestTypePost,
			TargetCount: 1,
			XPReward:    10,
			Repeatable:  model.RepeatDaily,
		},
		{
			Title:       "Weekly meal streak",
			Description: "Share five meals within one week",
			Type:        model.QuestTypeFood,
			TargetCount: 5,
			XPReward:    50,
			Repeatable:  model.RepeatWeekly,
		},
	}

	for i := range defaultQuests {
		if err := quests.Create(ctx, &defaultQuests[i]); err != nil {
			return err
		}
	}

	log.Printf("seeded %d quests", len(defaultQuests))
	return nil
}

// SeedAdminUser creates a development admin account when none exists.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		Email:        "admin@localhost",
		PasswordHash: string(hash),
		Role:         "admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("seeded development admin user")
	return nil
}
