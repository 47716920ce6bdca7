// Package progress computes course and module completion from the set of
// completed topics and quizzes. The aggregation functions are pure; the
// database-backed recompute lives in recompute.go.
package progress

import "math"

// ModuleItems is the per-module input to the aggregator: how many published
// topics the module has, how many of those the user completed, and whether
// the module's quiz (if any) has been passed.
type ModuleItems struct {
	TotalTopics     int
	CompletedTopics int
	HasQuiz         bool
	QuizCompleted   bool
}

// Summary is the aggregate result for a course
type Summary struct {
	CompletedItems int     `json:"completed_items"`
	TotalItems     int     `json:"total_items"`
	Percentage     float64 `json:"percentage"`
	IsCompleted    bool    `json:"is_completed"`
}

// ModuleCounts returns (completedItems, totalItems) for one module. A quiz
// counts as one item alongside the module's topics.
func ModuleCounts(m ModuleItems) (int, int) {
	completed := m.CompletedTopics
	total := m.TotalTopics
	if m.HasQuiz {
		total++
		if m.QuizCompleted {
			completed++
		}
	}
	return completed, total
}

// Course aggregates module counts into a course-level summary. A course with
// nothing to complete is 0% and not completed, never 100%.
func Course(modules []ModuleItems) Summary {
	var completed, total int
	for _, m := range modules {
		c, t := ModuleCounts(m)
		completed += c
		total += t
	}

	s := Summary{
		CompletedItems: completed,
		TotalItems:     total,
	}
	if total > 0 {
		s.Percentage = math.Round(float64(completed) / float64(total) * 100)
		s.IsCompleted = completed == total
	}
	return s
}
