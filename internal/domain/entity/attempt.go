package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuizAttempt is one graded instance of a student answering a quiz.
// Attempts are immutable once recorded. Attempt numbers form a gapless
// 1-based sequence per (student, quiz), enforced by a unique constraint.
type QuizAttempt struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	StudentID      uint            `gorm:"not null;index;uniqueIndex:idx_attempt_student_quiz_number" json:"student_id"`
	QuizID         uint            `gorm:"not null;index;uniqueIndex:idx_attempt_student_quiz_number" json:"quiz_id"`
	AttemptNumber  int             `gorm:"not null;uniqueIndex:idx_attempt_student_quiz_number" json:"attempt_number"`
	TotalQuestions int             `gorm:"not null;default:0" json:"total_questions"`
	CorrectAnswers int             `gorm:"not null;default:0" json:"correct_answers"`
	Score          decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"score"`
	Passed         bool            `gorm:"not null;default:false" json:"passed"`
	StartedAt      time.Time       `gorm:"not null" json:"started_at"`
	CompletedAt    time.Time       `gorm:"not null" json:"completed_at"`
	Answers        []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName sets the table name for GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AttemptAnswer is one pre-graded answer record inside an attempt. Grading of
// the individual answer (option matching, free-text checks) happens before
// recording; the engine only aggregates IsCorrect and PointsEarned.
type AttemptAnswer struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	AttemptID        uint   `gorm:"not null;index" json:"attempt_id"`
	QuestionID       uint   `gorm:"not null" json:"question_id"`
	SelectedOptionID *uint  `json:"selected_option_id,omitempty"`
	AnswerText       string `gorm:"size:1000;not null;default:''" json:"answer_text"`
	IsCorrect        bool   `gorm:"not null;default:false" json:"is_correct"`
	PointsEarned     int    `gorm:"not null;default:0" json:"points_earned"`
}

// TableName sets the table name for GORM
func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
