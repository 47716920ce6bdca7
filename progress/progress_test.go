package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseEmpty(t *testing.T) {
	summary := Course([]ModuleItems{})

	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, 0, summary.CompletedItems)
	assert.Equal(t, float64(0), summary.Percentage)
	assert.False(t, summary.IsCompleted, "a course with nothing to complete must not present as done")
}

func TestCourseZeroItemModules(t *testing.T) {
	// Modules with no topics and no quiz contribute nothing to either side
	summary := Course([]ModuleItems{
		{},
		{},
	})

	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, float64(0), summary.Percentage)
	assert.False(t, summary.IsCompleted)
}

func TestModuleCountsQuizCountsOnce(t *testing.T) {
	completed, total := ModuleCounts(ModuleItems{
		TotalTopics:     3,
		CompletedTopics: 1,
		HasQuiz:         true,
		QuizCompleted:   false,
	})

	assert.Equal(t, 1, completed)
	assert.Equal(t, 4, total)

	completed, total = ModuleCounts(ModuleItems{
		TotalTopics:     3,
		CompletedTopics: 3,
		HasQuiz:         true,
		QuizCompleted:   true,
	})

	assert.Equal(t, 4, completed)
	assert.Equal(t, 4, total)
}

func TestCoursePercentageRounding(t *testing.T) {
	testCases := []struct {
		name      string
		modules   []ModuleItems
		expectPct float64
	}{
		{
			name:      "one of four",
			modules:   []ModuleItems{{TotalTopics: 3, CompletedTopics: 1, HasQuiz: true}},
			expectPct: 25,
		},
		{
			name:      "one of three rounds down",
			modules:   []ModuleItems{{TotalTopics: 3, CompletedTopics: 1}},
			expectPct: 33,
		},
		{
			name:      "two of three rounds up",
			modules:   []ModuleItems{{TotalTopics: 3, CompletedTopics: 2}},
			expectPct: 67,
		},
		{
			name: "half rounds up",
			// 1/8 = 12.5 -> 13
			modules:   []ModuleItems{{TotalTopics: 8, CompletedTopics: 1}},
			expectPct: 13,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := Course(tc.modules)
			assert.Equal(t, tc.expectPct, summary.Percentage)
			assert.False(t, summary.IsCompleted)
		})
	}
}

func TestCourseCompletion(t *testing.T) {
	modules := []ModuleItems{
		{TotalTopics: 3, CompletedTopics: 3, HasQuiz: true, QuizCompleted: true},
		{TotalTopics: 2, CompletedTopics: 2},
	}

	summary := Course(modules)

	assert.Equal(t, 6, summary.TotalItems)
	assert.Equal(t, 6, summary.CompletedItems)
	assert.Equal(t, float64(100), summary.Percentage)
	assert.True(t, summary.IsCompleted)
}

func TestCourseNotCompleteUntilQuizPassed(t *testing.T) {
	modules := []ModuleItems{
		{TotalTopics: 3, CompletedTopics: 3, HasQuiz: true, QuizCompleted: false},
	}

	summary := Course(modules)

	assert.Equal(t, float64(75), summary.Percentage)
	assert.False(t, summary.IsCompleted)
}
