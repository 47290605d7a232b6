package service

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// AttemptOutcome is the aggregate result of a submitted attempt.
type AttemptOutcome struct {
	CorrectAnswers int
	TotalPoints    decimal.Decimal
	Passed         bool
}

// scoreAttempt aggregates pre-graded answer records into an attempt outcome.
// Each record already carries IsCorrect and PointsEarned; grading individual
// answers is the submitter's concern and question content is never inspected
// here. The passing comparison is exact decimal, inclusive at the threshold.
func scoreAttempt(quiz *entity.Quiz, answers []entity.AttemptAnswer) AttemptOutcome {
	correct := 0
	totalPoints := int64(0)
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
		totalPoints += int64(a.PointsEarned)
	}

	total := decimal.NewFromInt(totalPoints)
	return AttemptOutcome{
		CorrectAnswers: correct,
		TotalPoints:    total,
		Passed:         total.GreaterThanOrEqual(quiz.PassingScore),
	}
}
