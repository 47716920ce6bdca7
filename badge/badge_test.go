package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPoints(t *testing.T) {
	testCases := []struct {
		points uint
		tier   string
	}{
		{0, "Newbie"},
		{19, "Newbie"},
		{20, "Explorer"},
		{39, "Explorer"},
		{40, "Achiever"},
		{45, "Achiever"},
		{60, "Specialist"},
		{80, "Expert"},
		{100, "Master"},
		{500, "Master"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.tier, ForPoints(tc.points).Name, "%d points", tc.points)
	}
}

func TestForPointsMonotonic(t *testing.T) {
	// The tier index must never decrease as points grow
	last := -1
	for points := uint(0); points <= 120; points++ {
		tier := ForPoints(points)
		index := -1
		for i, t := range Tiers {
			if t.Name == tier.Name {
				index = i
			}
		}
		require.GreaterOrEqual(t, index, last, "%d points", points)
		last = index
	}
}

func TestNext(t *testing.T) {
	next := Next(45)
	require.NotNil(t, next)
	assert.Equal(t, "Specialist", next.Name)

	assert.Nil(t, Next(100))
	assert.Nil(t, Next(250))
}

func TestProgressToNext(t *testing.T) {
	// 45 points: Achiever at 40, Specialist at 60, a quarter of the way
	assert.Equal(t, float64(25), ProgressToNext(45))

	assert.Equal(t, float64(0), ProgressToNext(40))
	assert.Equal(t, float64(50), ProgressToNext(10))

	// Top tier reports full progress
	assert.Equal(t, float64(100), ProgressToNext(100))
	assert.Equal(t, float64(100), ProgressToNext(999))
}
