package repository

import (
	"context"

	"arjuna.id/healthquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	// FindAllRanked returns every account's ranking fields ordered by exp
	// descending, ties broken by creation time then id so ranks are
	// deterministic.
	FindAllRanked(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AddQuestCompletion appends the completion and increments exp in a
	// single transaction, returning the new total. The increment happens
	// SQL-side so concurrent completions never lose updates.
	AddQuestCompletion(ctx context.Context, userID uuid.UUID, completion *model.QuestCompletion) (int, error)
	FindQuestHistory(ctx context.Context, userID uuid.UUID) ([]model.QuestCompletion, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Badges").
		Preload("QuestHistory").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) FindAllRanked(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Select("id", "username", "exp", "avatar", "created_at").
		Order("exp DESC, created_at ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) AddQuestCompletion(ctx context.Context, userID uuid.UUID, completion *model.QuestCompletion) (int, error) {
	var newExp int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ?", userID).
			UpdateColumn("exp", gorm.Expr("exp + ?", completion.ExpEarned))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		completion.UserID = userID
		if err := tx.Create(completion).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Select("exp").
			Where("id = ?", userID).
			Scan(&newExp).Error
	})
	if err != nil {
		return 0, err
	}

	return newExp, nil
}

func (r *userRepository) FindQuestHistory(ctx context.Context, userID uuid.UUID) ([]model.QuestCompletion, error) {
	var history []model.QuestCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at ASC, id ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}

	return history, nil
}
