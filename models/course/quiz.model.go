package course

import (
	"learnsphere/quiz"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz belongs to a module; at most one non-deleted quiz per module.
type Quiz struct {
	gorm.Model
	CourseID     uint                             `json:"course_id" gorm:"index;not null"`
	ModuleID     uint                             `json:"module_id" gorm:"index;not null"`
	Title        string                           `json:"title"`
	PassingScore int                              `json:"passing_score" gorm:"default:70"` // percentage
	Rewards      datatypes.JSONType[quiz.Rewards] `json:"rewards"`                         // points by attempt number
	IsPublished  bool                             `json:"is_published" gorm:"default:false"`
	IsDeleted    bool                             `gorm:"default:false"`
}

// Question belongs to a quiz
type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	Type       string `json:"type" gorm:"default:'SINGLE_CHOICE'"`
	Points     int    `json:"points" gorm:"default:1"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuestionOption is one answer choice for a question. Authoring is expected
// to flag exactly one option correct per question.
type QuestionOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizCompletion records the first pass of a quiz by a user. Existence of the
// row means passed at least once; later passes must not award points again.
// The unique index backs the check-then-act in the badge ledger.
type QuizCompletion struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"uniqueIndex:idx_user_quiz;not null"`
	QuizID        uint `json:"quiz_id" gorm:"uniqueIndex:idx_user_quiz;not null"`
	CourseID      uint `json:"course_id" gorm:"index;not null"`
	PointsEarned  int  `json:"points_earned" gorm:"default:0"`
	AttemptNumber int  `json:"attempt_number" gorm:"default:1"`
}
