package dto

import "github.com/google/uuid"

// RankEntry is derived per request from the current account set, never
// persisted.
type RankEntry struct {
	Rank     int       `json:"rank"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Exp      int       `json:"exp"`
	Avatar   string    `json:"avatar"`
}
