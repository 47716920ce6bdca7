package quiz

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Session state machine states
const (
	StateIntro    = "intro"
	StateQuestion = "question"
	StateResult   = "result"
)

var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrNoSelection     = errors.New("an option must be selected before proceeding")
	ErrWrongQuestion   = errors.New("answer does not match the current question")
	ErrUnknownOption   = errors.New("selected option does not belong to the question")
	ErrAttemptFinished = errors.New("attempt already finished")
	ErrNotFinished     = errors.New("attempt not finished yet")
)

// Session is one user's in-flight quiz attempt. Answers are locked in as each
// question is answered; there is no backward transition. The attempt counter
// is session-scoped: it survives retries within the session and resets when a
// new session is started. The mutex serializes handler access so rapid
// duplicate submissions of the same answer cannot corrupt the state machine.
type Session struct {
	ID           string
	UserID       uint
	QuizID       uint
	CourseID     uint
	PassingScore int
	Rewards      Rewards
	Questions    []Question

	mu           sync.Mutex
	State        string
	CurrentIndex int
	Attempt      int
	answers      map[uint]uint
	result       *Result
}

// NewSession starts attempt 1 in the intro state
func NewSession(userID, quizID, courseID uint, questions []Question, passingScore int, rewards Rewards) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		QuizID:       quizID,
		CourseID:     courseID,
		PassingScore: passingScore,
		Rewards:      rewards,
		Questions:    questions,
		State:        StateIntro,
		Attempt:      1,
		answers:      make(map[uint]uint),
	}, nil
}

// Answer locks in the selection for the current question and advances. On the
// last question it transitions to the result state and scores the attempt.
func (s *Session) Answer(questionID, optionID uint) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == StateResult {
		return nil, ErrAttemptFinished
	}
	if s.State == StateIntro {
		s.State = StateQuestion
		s.CurrentIndex = 0
	}

	current := s.Questions[s.CurrentIndex]
	if questionID != current.ID {
		return nil, ErrWrongQuestion
	}
	if optionID == 0 {
		return nil, ErrNoSelection
	}
	valid := false
	for _, opt := range current.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownOption
	}

	s.answers[questionID] = optionID

	if s.CurrentIndex == len(s.Questions)-1 {
		s.State = StateResult
		result := Evaluate(s.Questions, s.answers, s.PassingScore, s.Rewards, s.Attempt)
		s.result = &result
		return s.result, nil
	}

	s.CurrentIndex++
	return nil, nil
}

// Progress returns the session's current state and question position
func (s *Session) Progress() (state string, questionIndex, questionCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State, s.CurrentIndex, len(s.Questions)
}

// Result returns the score of a finished attempt
func (s *Session) Result() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateResult {
		return nil, ErrNotFinished
	}
	return s.result, nil
}

// Retry discards the attempt's answers and re-enters the intro state,
// returning the incremented attempt number
func (s *Session) Retry() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attempt++
	s.State = StateIntro
	s.CurrentIndex = 0
	s.answers = make(map[uint]uint)
	s.result = nil
	return s.Attempt
}

// Store keeps in-flight sessions in memory. Attempt counters therefore reset
// when the process restarts; only a passing completion is persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Put registers a session under its id
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns the session for id, or nil
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Remove drops a finished session
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
