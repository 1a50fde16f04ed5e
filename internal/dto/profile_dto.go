package dto

// ProfileResponse is the observable profile contract: level and progress are
// derived from exp, streak/badge/quest numbers are read straight off the
// account record.
type ProfileResponse struct {
	Username   string `json:"username"`
	Level      int    `json:"level"`
	Exp        int    `json:"exp"`
	ExpToNext  int    `json:"exp_to_next"`
	Progress   int    `json:"progress"`
	Streak     int    `json:"streak"`
	TotalBadge int    `json:"total_badge"`
	TotalQuest int    `json:"total_quest"`
}
