package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLevelZeroExp(t *testing.T) {
	info := ComputeLevel(0)

	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 0, info.ExpAtLevelStart)
	assert.Equal(t, 100, info.ExpAtNextLevel)
	assert.Equal(t, 100, info.ExpToNext)
	assert.Equal(t, 0, info.ProgressDecile)
}

func TestComputeLevelBoundaries(t *testing.T) {
	// Level boundaries sit at 0, 100, 400, 900, ... exp; reaching the
	// threshold exactly enters the next level.
	cases := []struct {
		exp   int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{10000, 11},
	}

	for _, tc := range cases {
		info := ComputeLevel(tc.exp)
		assert.Equalf(t, tc.level, info.Level, "exp=%d", tc.exp)
	}
}

func TestComputeLevelInvariants(t *testing.T) {
	for exp := 0; exp <= 2500; exp += 7 {
		info := ComputeLevel(exp)

		assert.GreaterOrEqual(t, info.Level, 1)
		assert.LessOrEqual(t, info.ExpAtLevelStart, exp)
		assert.Greater(t, info.ExpAtNextLevel, exp)
		assert.Equal(t, info.ExpAtNextLevel-exp, info.ExpToNext)
		assert.GreaterOrEqual(t, info.ProgressDecile, 0)
		assert.LessOrEqual(t, info.ProgressDecile, 9)
	}
}

func TestComputeLevelMonotonic(t *testing.T) {
	prev := ComputeLevel(0).Level
	for exp := 1; exp <= 2500; exp++ {
		level := ComputeLevel(exp).Level
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
}
