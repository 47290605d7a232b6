package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// AnswerResponse is one graded answer record inside an attempt.
type AnswerResponse struct {
	QuestionID       uint   `json:"question_id"`
	SelectedOptionID *uint  `json:"selected_option_id,omitempty"`
	AnswerText       string `json:"answer_text,omitempty"`
	IsCorrect        bool   `json:"is_correct"`
	PointsEarned     int    `json:"points_earned"`
}

// AttemptResponse is a graded quiz attempt for the client.
type AttemptResponse struct {
	ID             uint             `json:"id"`
	StudentID      uint             `json:"student_id"`
	QuizID         uint             `json:"quiz_id"`
	AttemptNumber  int              `json:"attempt_number"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	Score          decimal.Decimal  `json:"score"`
	Passed         bool             `json:"passed"`
	StartedAt      time.Time        `json:"started_at"`
	CompletedAt    time.Time        `json:"completed_at"`
	Answers        []AnswerResponse `json:"answers,omitempty"`
}

// NewAttemptResponse creates the DTO for a graded attempt
func NewAttemptResponse(attempt *entity.QuizAttempt, includeAnswers bool) *AttemptResponse {
	if attempt == nil {
		return nil
	}

	var answers []AnswerResponse
	if includeAnswers {
		answers = make([]AnswerResponse, len(attempt.Answers))
		for i, a := range attempt.Answers {
			answers[i] = AnswerResponse{
				QuestionID:       a.QuestionID,
				SelectedOptionID: a.SelectedOptionID,
				AnswerText:       a.AnswerText,
				IsCorrect:        a.IsCorrect,
				PointsEarned:     a.PointsEarned,
			}
		}
	}

	return &AttemptResponse{
		ID:             attempt.ID,
		StudentID:      attempt.StudentID,
		QuizID:         attempt.QuizID,
		AttemptNumber:  attempt.AttemptNumber,
		TotalQuestions: attempt.TotalQuestions,
		CorrectAnswers: attempt.CorrectAnswers,
		Score:          attempt.Score,
		Passed:         attempt.Passed,
		StartedAt:      attempt.StartedAt,
		CompletedAt:    attempt.CompletedAt,
		Answers:        answers,
	}
}

// NewListAttemptResponse creates the DTO slice for an attempt history
func NewListAttemptResponse(attempts []entity.QuizAttempt) []*AttemptResponse {
	list := make([]*AttemptResponse, len(attempts))
	for i := range attempts {
		list[i] = NewAttemptResponse(&attempts[i], false)
	}
	return list
}
