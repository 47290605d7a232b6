package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// QuizInput is an edited quiz definition as submitted by an author. Question
// and option IDs are optional: an ID referencing an existing child means
// "update in place, keep identity"; a missing or unknown ID means "create".
type QuizInput struct {
	Title            string
	Description      string
	TotalQuestions   int
	PassingScore     decimal.Decimal
	TimeLimitMinutes int
	MaxAttempts      int
	IsActive         bool
	Questions        []QuestionInput
}

// QuestionInput is one question of an edited definition.
type QuestionInput struct {
	ID               uint
	QuestionText     string
	QuestionImageURL string
	DifficultyLevel  string
	Points           int
	DisplayOrder     int
	Options          []OptionInput
}

// OptionInput is one option of an edited question.
type OptionInput struct {
	ID             uint
	OptionText     string
	OptionImageURL string
	IsCorrect      bool
	DisplayOrder   int
}

// buildDefinition creates a fresh definition from the input. Used on
// creation, where there is nothing to reconcile: every question and option
// is new. Incoming IDs are ignored.
func buildDefinition(input QuizInput, creatorID uint) (*entity.Quiz, error) {
	quiz := &entity.Quiz{
		Title:            input.Title,
		Description:      input.Description,
		TotalQuestions:   input.TotalQuestions,
		PassingScore:     input.PassingScore,
		TimeLimitMinutes: input.TimeLimitMinutes,
		MaxAttempts:      input.MaxAttempts,
		IsActive:         true,
		CreatedByID:      creatorID,
	}
	if quiz.MaxAttempts <= 0 {
		quiz.MaxAttempts = 1
	}

	for _, q := range input.Questions {
		difficulty, err := entity.ParseDifficulty(q.DifficultyLevel)
		if err != nil {
			return nil, err
		}
		question := entity.QuizQuestion{
			QuestionText:     q.QuestionText,
			QuestionImageURL: q.QuestionImageURL,
			DifficultyLevel:  difficulty,
			Points:           q.Points,
			DisplayOrder:     q.DisplayOrder,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, entity.QuestionOption{
				OptionText:     o.OptionText,
				OptionImageURL: o.OptionImageURL,
				IsCorrect:      o.IsCorrect,
				DisplayOrder:   o.DisplayOrder,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz, nil
}

// mergeDefinition reconciles the edited input against the persisted
// definition, mutating quiz in place. Questions and options that the input
// references by ID keep their identity and are updated; children absent from
// the input are dropped and their IDs returned for deletion. Image fields
// are only overwritten by non-empty incoming values, so a partial edit never
// wipes a stored image.
func mergeDefinition(quiz *entity.Quiz, input QuizInput) (removedQuestionIDs, removedOptionIDs []uint, err error) {
	quiz.Title = input.Title
	quiz.Description = input.Description
	quiz.TotalQuestions = input.TotalQuestions
	quiz.PassingScore = input.PassingScore
	quiz.TimeLimitMinutes = input.TimeLimitMinutes
	quiz.MaxAttempts = input.MaxAttempts
	quiz.IsActive = input.IsActive

	existing := make(map[uint]*entity.QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		existing[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	kept := make(map[uint]bool, len(input.Questions))
	merged := make([]entity.QuizQuestion, 0, len(input.Questions))

	for _, q := range input.Questions {
		difficulty, parseErr := entity.ParseDifficulty(q.DifficultyLevel)
		if parseErr != nil {
			return nil, nil, parseErr
		}

		var question entity.QuizQuestion
		if prev, ok := existing[q.ID]; q.ID != 0 && ok {
			question = *prev
			kept[q.ID] = true
		} else {
			question = entity.QuizQuestion{QuizID: quiz.ID}
		}

		question.QuestionText = q.QuestionText
		question.DifficultyLevel = difficulty
		question.Points = q.Points
		question.DisplayOrder = q.DisplayOrder
		if strings.TrimSpace(q.QuestionImageURL) != "" {
			question.QuestionImageURL = q.QuestionImageURL
		}

		removed := mergeOptions(&question, q.Options)
		removedOptionIDs = append(removedOptionIDs, removed...)

		merged = append(merged, question)
	}

	for id := range existing {
		if !kept[id] {
			removedQuestionIDs = append(removedQuestionIDs, id)
		}
	}

	quiz.Questions = merged
	return removedQuestionIDs, removedOptionIDs, nil
}

// mergeOptions applies the same reuse-by-identity rule to a question's
// options, scoped to that question. Returns the IDs of dropped options.
func mergeOptions(question *entity.QuizQuestion, inputs []OptionInput) (removedIDs []uint) {
	existing := make(map[uint]*entity.QuestionOption, len(question.Options))
	for i := range question.Options {
		existing[question.Options[i].ID] = &question.Options[i]
	}

	kept := make(map[uint]bool, len(inputs))
	merged := make([]entity.QuestionOption, 0, len(inputs))

	for _, o := range inputs {
		var option entity.QuestionOption
		if prev, ok := existing[o.ID]; o.ID != 0 && ok {
			option = *prev
			kept[o.ID] = true
		} else {
			option = entity.QuestionOption{QuestionID: question.ID}
		}

		option.OptionText = o.OptionText
		option.IsCorrect = o.IsCorrect
		option.DisplayOrder = o.DisplayOrder
		if strings.TrimSpace(o.OptionImageURL) != "" {
			option.OptionImageURL = o.OptionImageURL
		}

		merged = append(merged, option)
	}

	for id := range existing {
		if !kept[id] {
			removedIDs = append(removedIDs, id)
		}
	}

	question.Options = merged
	return removedIDs
}
