package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

func TestScoreAttempt_AggregatesAnswers(t *testing.T) {
	quiz := &entity.Quiz{PassingScore: decimal.NewFromInt(60)}
	answers := []entity.AttemptAnswer{
		{QuestionID: 1, IsCorrect: true, PointsEarned: 30},
		{QuestionID: 2, IsCorrect: false, PointsEarned: 0},
		{QuestionID: 3, IsCorrect: true, PointsEarned: 25},
	}

	outcome := scoreAttempt(quiz, answers)

	assert.Equal(t, 2, outcome.CorrectAnswers)
	assert.True(t, outcome.TotalPoints.Equal(decimal.NewFromInt(55)))
	assert.False(t, outcome.Passed)
}

func TestScoreAttempt_PassingThresholdInclusive(t *testing.T) {
	quiz := &entity.Quiz{PassingScore: decimal.NewFromInt(60)}

	exactly := scoreAttempt(quiz, []entity.AttemptAnswer{
		{IsCorrect: true, PointsEarned: 60},
	})
	assert.True(t, exactly.Passed, "score equal to the passing score must pass")

	oneBelow := scoreAttempt(quiz, []entity.AttemptAnswer{
		{IsCorrect: true, PointsEarned: 59},
	})
	assert.False(t, oneBelow.Passed)
}

func TestScoreAttempt_FractionalPassingScore(t *testing.T) {
	// 59.5 threshold: an integer total of 59 fails, 60 passes. The comparison
	// is exact decimal, no float rounding.
	quiz := &entity.Quiz{PassingScore: decimal.RequireFromString("59.5")}

	below := scoreAttempt(quiz, []entity.AttemptAnswer{{IsCorrect: true, PointsEarned: 59}})
	assert.False(t, below.Passed)

	above := scoreAttempt(quiz, []entity.AttemptAnswer{{IsCorrect: true, PointsEarned: 60}})
	assert.True(t, above.Passed)
}

func TestScoreAttempt_EmptyAnswers(t *testing.T) {
	quiz := &entity.Quiz{PassingScore: decimal.NewFromInt(1)}

	outcome := scoreAttempt(quiz, nil)

	assert.Equal(t, 0, outcome.CorrectAnswers)
	assert.True(t, outcome.TotalPoints.IsZero())
	assert.False(t, outcome.Passed)
}

func TestScoreAttempt_ZeroPassingScoreAlwaysPasses(t *testing.T) {
	quiz := &entity.Quiz{PassingScore: decimal.Zero}

	outcome := scoreAttempt(quiz, []entity.AttemptAnswer{{IsCorrect: false, PointsEarned: 0}})

	assert.True(t, outcome.Passed)
}
