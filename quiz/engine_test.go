package quiz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveQuestions builds a quiz of 5 single-choice questions where option
// 10*n+1 is the correct one for question n
func fiveQuestions() []Question {
	questions := make([]Question, 5)
	for i := range questions {
		base := uint((i + 1) * 10)
		questions[i] = Question{
			ID: uint(i + 1),
			Options: []Option{
				{ID: base + 1, IsCorrect: true},
				{ID: base + 2},
				{ID: base + 3},
			},
		}
	}
	return questions
}

func TestEvaluatePass(t *testing.T) {
	questions := fiveQuestions()

	// 4 of 5 correct at a 70% threshold
	answers := map[uint]uint{1: 11, 2: 21, 3: 31, 4: 41, 5: 52}
	result := Evaluate(questions, answers, 70, DefaultRewards, 1)

	assert.Equal(t, 4, result.Score)
	assert.Equal(t, float64(80), result.Percentage)
	assert.True(t, result.Passed)
	assert.Equal(t, 20, result.Points)
}

func TestEvaluateFailAwardsNothing(t *testing.T) {
	questions := fiveQuestions()

	// 3 of 5 correct at a 70% threshold
	answers := map[uint]uint{1: 11, 2: 21, 3: 31, 4: 42, 5: 52}
	result := Evaluate(questions, answers, 70, DefaultRewards, 1)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, float64(60), result.Percentage)
	assert.False(t, result.Passed)
	assert.Equal(t, 0, result.Points)
}

func TestEvaluateZeroQuestions(t *testing.T) {
	result := Evaluate(nil, map[uint]uint{}, 70, DefaultRewards, 1)

	assert.Equal(t, 0, result.QuestionCount)
	assert.Equal(t, float64(0), result.Percentage)
	assert.False(t, result.Passed)
	assert.Equal(t, 0, result.Points)
}

func TestRewardsForAttempt(t *testing.T) {
	rewards := Rewards{FirstTry: 20, SecondTry: 15, ThirdTry: 10, MoreTries: 5}

	testCases := []struct {
		attempt int
		expect  int
	}{
		{1, 20},
		{2, 15},
		{3, 10},
		{4, 5},
		{9, 5}, // clamps to the last tier
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, rewards.ForAttempt(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestCountCorrectIgnoresUnknownOptions(t *testing.T) {
	questions := fiveQuestions()

	answers := map[uint]uint{1: 999, 2: 21}
	assert.Equal(t, 1, CountCorrect(questions, answers))
}

func TestSessionRequiresQuestions(t *testing.T) {
	_, err := NewSession(1, 1, 1, nil, 70, DefaultRewards)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSessionHappyPath(t *testing.T) {
	questions := fiveQuestions()
	session, err := NewSession(1, 7, 3, questions, 70, DefaultRewards)
	require.NoError(t, err)

	assert.Equal(t, StateIntro, session.State)
	assert.Equal(t, 1, session.Attempt)

	// Answer all five correctly; the engine advances one question at a time
	for i, q := range questions {
		result, err := session.Answer(q.ID, q.Options[0].ID)
		require.NoError(t, err)

		if i < len(questions)-1 {
			assert.Nil(t, result)
			assert.Equal(t, StateQuestion, session.State)
			assert.Equal(t, i+1, session.CurrentIndex)
		} else {
			require.NotNil(t, result)
			assert.Equal(t, StateResult, session.State)
			assert.Equal(t, 5, result.Score)
			assert.True(t, result.Passed)
			assert.Equal(t, 20, result.Points)
		}
	}

	// A finished attempt cannot take more answers
	_, err = session.Answer(questions[0].ID, questions[0].Options[0].ID)
	assert.ErrorIs(t, err, ErrAttemptFinished)
}

func TestSessionRejectsBadAnswers(t *testing.T) {
	questions := fiveQuestions()
	session, err := NewSession(1, 7, 3, questions, 70, DefaultRewards)
	require.NoError(t, err)

	// Answering the wrong question is rejected
	_, err = session.Answer(questions[2].ID, 31)
	assert.ErrorIs(t, err, ErrWrongQuestion)

	// Proceeding without a selection is rejected
	_, err = session.Answer(questions[0].ID, 0)
	assert.ErrorIs(t, err, ErrNoSelection)

	// An option from another question is rejected
	_, err = session.Answer(questions[0].ID, 21)
	assert.ErrorIs(t, err, ErrUnknownOption)

	// The state machine did not advance
	assert.Equal(t, 0, session.CurrentIndex)
}

func TestSessionConcurrentDuplicateAnswers(t *testing.T) {
	questions := fiveQuestions()
	session, err := NewSession(1, 7, 3, questions, 70, DefaultRewards)
	require.NoError(t, err)

	// A double-submitted answer must advance the session exactly once; the
	// duplicate sees the already-advanced question and is rejected
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = session.Answer(questions[0].ID, questions[0].Options[0].ID)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, submitErr := range errs {
		if submitErr == nil {
			accepted++
		} else {
			assert.ErrorIs(t, submitErr, ErrWrongQuestion)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, session.CurrentIndex)
	assert.Equal(t, StateQuestion, session.State)
}

func TestSessionRetry(t *testing.T) {
	questions := fiveQuestions()
	session, err := NewSession(1, 7, 3, questions, 70, Rewards{FirstTry: 20, SecondTry: 15, ThirdTry: 10, MoreTries: 5})
	require.NoError(t, err)

	// Fail the first attempt: all wrong
	var result *Result
	for _, q := range questions {
		result, err = session.Answer(q.ID, q.Options[1].ID)
		require.NoError(t, err)
	}
	require.NotNil(t, result)
	assert.False(t, result.Passed)

	// Retry discards answers and increments the attempt counter
	session.Retry()
	assert.Equal(t, StateIntro, session.State)
	assert.Equal(t, 2, session.Attempt)

	_, err = session.Result()
	assert.ErrorIs(t, err, ErrNotFinished)

	// Pass on second attempt: second-try reward applies
	for _, q := range questions {
		result, err = session.Answer(q.ID, q.Options[0].ID)
		require.NoError(t, err)
	}
	require.NotNil(t, result)
	assert.True(t, result.Passed)
	assert.Equal(t, 15, result.Points)
	assert.Equal(t, 2, result.AttemptNumber)
}
