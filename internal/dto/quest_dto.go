package dto

import "time"

type CompleteQuestRequest struct {
	QuestID     string    `json:"quest_id" binding:"required"`
	ExpEarned   int       `json:"exp_earned" binding:"required,gt=0"`
	CompletedAt time.Time `json:"completed_at" binding:"required"`
}

type CompletionResponse struct {
	QuestID     string    `json:"quest_id"`
	ExpEarned   int       `json:"exp_earned"`
	CompletedAt time.Time `json:"completed_at"`
	TotalExp    int       `json:"total_exp"`
}
