package service

import "math"

// LevelInfo is the derivation of an account's level from its exp total.
type LevelInfo struct {
	Level           int `json:"level"`
	Exp             int `json:"exp"`
	ExpAtLevelStart int `json:"exp_at_level_start"`
	ExpAtNextLevel  int `json:"exp_at_next_level"`
	ExpToNext       int `json:"exp_to_next"`
	ProgressDecile  int `json:"progress"`
}

// ComputeLevel derives the level tier from cumulative exp. The quadratic
// curve puts level boundaries at 0, 100, 400, 900, ... exp. Double-precision
// square root with truncation toward zero keeps boundary values exact for
// every perfect-square threshold.
func ComputeLevel(exp int) LevelInfo {
	level := int(math.Floor(math.Sqrt(float64(exp)/100))) + 1
	start := (level - 1) * (level - 1) * 100
	next := level * level * 100

	return LevelInfo{
		Level:           level,
		Exp:             exp,
		ExpAtLevelStart: start,
		ExpAtNextLevel:  next,
		ExpToNext:       next - exp,
		ProgressDecile:  int(math.Floor(float64(exp-start) / float64(next-start) * 10)),
	}
}
