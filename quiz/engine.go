// Package quiz scores quiz attempts and drives the per-attempt session state
// machine (intro -> question(n) -> result). Scoring is pure; nothing here
// touches persistence.
package quiz

// Option is one answer choice as seen by the engine
type Option struct {
	ID        uint
	IsCorrect bool
}

// Question is a scoring-engine view of a quiz question
type Question struct {
	ID      uint
	Options []Option
}

// Result is the outcome of scoring one attempt
type Result struct {
	Score         int     `json:"score"`
	QuestionCount int     `json:"question_count"`
	Percentage    float64 `json:"percentage"`
	Passed        bool    `json:"passed"`
	Points        int     `json:"points"`
	AttemptNumber int     `json:"attempt_number"`
}

// CountCorrect counts answered questions whose selected option is correct.
// Unanswered questions and unknown option ids score zero.
func CountCorrect(questions []Question, answers map[uint]uint) int {
	score := 0
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == selected && opt.IsCorrect {
				score++
				break
			}
		}
	}
	return score
}

// Evaluate scores a completed attempt. A quiz with zero questions is an
// automatic fail at 0%, never a division by zero. Points are zero unless the
// attempt passed.
func Evaluate(questions []Question, answers map[uint]uint, passingScore int, rewards Rewards, attempt int) Result {
	result := Result{
		QuestionCount: len(questions),
		AttemptNumber: attempt,
	}
	if len(questions) == 0 {
		return result
	}

	result.Score = CountCorrect(questions, answers)
	result.Percentage = float64(result.Score) / float64(len(questions)) * 100
	result.Passed = result.Percentage >= float64(passingScore)
	if result.Passed {
		result.Points = rewards.ForAttempt(attempt)
	}
	return result
}
