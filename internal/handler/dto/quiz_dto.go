package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// OptionResponse is one answer option in a client-facing question. IsCorrect
// is a pointer so the student view can omit it entirely.
type OptionResponse struct {
	ID             uint   `json:"id"`
	OptionText     string `json:"option_text"`
	OptionImageURL string `json:"option_image_url,omitempty"`
	IsCorrect      *bool  `json:"is_correct,omitempty"`
	DisplayOrder   int    `json:"display_order"`
}

// QuestionResponse is one question of a quiz definition for the client.
type QuestionResponse struct {
	ID               uint             `json:"id"`
	QuizID           uint             `json:"quiz_id"`
	QuestionText     string           `json:"question_text"`
	QuestionImageURL string           `json:"question_image_url,omitempty"`
	DifficultyLevel  string           `json:"difficulty_level,omitempty"`
	Points           int              `json:"points"`
	DisplayOrder     int              `json:"display_order"`
	Options          []OptionResponse `json:"options"`
}

// QuizResponse is a quiz definition for the client.
type QuizResponse struct {
	ID               uint               `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	TotalQuestions   int                `json:"total_questions"`
	PassingScore     decimal.Decimal    `json:"passing_score"`
	TimeLimitMinutes int                `json:"time_limit_minutes"`
	MaxAttempts      int                `json:"max_attempts"`
	IsActive         bool               `json:"is_active"`
	CreatedBy        uint               `json:"created_by"`
	Questions        []QuestionResponse `json:"questions,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// PaginatedQuizResponse is a paginated quiz list.
type PaginatedQuizResponse struct {
	Quizzes []*QuizResponse `json:"quizzes"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// NewQuestionResponse creates the DTO for one question. When revealAnswers is
// false the is_correct flag is stripped from every option, so students taking
// the quiz cannot read the key off the wire.
func NewQuestionResponse(q *entity.QuizQuestion, revealAnswers bool) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i, o := range q.Options {
		options[i] = OptionResponse{
			ID:             o.ID,
			OptionText:     o.OptionText,
			OptionImageURL: o.OptionImageURL,
			DisplayOrder:   o.DisplayOrder,
		}
		if revealAnswers {
			isCorrect := o.IsCorrect
			options[i].IsCorrect = &isCorrect
		}
	}
	return QuestionResponse{
		ID:               q.ID,
		QuizID:           q.QuizID,
		QuestionText:     q.QuestionText,
		QuestionImageURL: q.QuestionImageURL,
		DifficultyLevel:  q.DifficultyLevel,
		Points:           q.Points,
		DisplayOrder:     q.DisplayOrder,
		Options:          options,
	}
}

// NewQuizResponse creates the DTO for a quiz definition
func NewQuizResponse(quiz *entity.Quiz, includeQuestions, revealAnswers bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	var questions []QuestionResponse
	if includeQuestions {
		questions = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			questions[i] = NewQuestionResponse(&quiz.Questions[i], revealAnswers)
		}
	}

	return &QuizResponse{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TotalQuestions:   quiz.TotalQuestions,
		PassingScore:     quiz.PassingScore,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		MaxAttempts:      quiz.MaxAttempts,
		IsActive:         quiz.IsActive,
		CreatedBy:        quiz.CreatedByID,
		Questions:        questions,
		CreatedAt:        quiz.CreatedAt,
		UpdatedAt:        quiz.UpdatedAt,
	}
}

// NewPaginatedQuizResponse creates the DTO for a paginated quiz list
func NewPaginatedQuizResponse(quizzes []entity.Quiz, total int64, page, perPage int) *PaginatedQuizResponse {
	list := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		list[i] = NewQuizResponse(&quizzes[i], false, false)
	}
	return &PaginatedQuizResponse{
		Quizzes: list,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
