package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

// attemptInsertRetries bounds the retry loop on a lost attempt-number race.
const attemptInsertRetries = 3

// AttemptService records graded quiz attempts and serves attempt history.
// Attempt numbers per (student, quiz) are a gapless 1-based sequence: the
// count and the insert run in one transaction, and the unique constraint on
// (student_id, quiz_id, attempt_number) closes the race between concurrent
// submissions.
type AttemptService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
}

// NewAttemptService creates a new attempt service
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		userRepo:    userRepo,
		db:          db,
	}
}

// RecordAttempt scores the pre-graded answers, assigns the next attempt
// number and persists the attempt with its answer records. Both timestamps
// are the moment of recording since grading is synchronous. The max_attempts
// field of the definition is informational; recording never rejects on it.
func (s *AttemptService) RecordAttempt(studentID, quizID uint, answers []entity.AttemptAnswer) (*entity.QuizAttempt, error) {
	student, err := s.userRepo.GetByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("student #%d: %w", studentID, err)
	}
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz #%d: %w", quizID, err)
	}

	outcome := scoreAttempt(quiz, answers)

	for try := 0; try < attemptInsertRetries; try++ {
		attempt, err := s.insertAttempt(student.ID, quiz, outcome, answers)
		if err == nil {
			log.Printf("[AttemptService.RecordAttempt] student #%d quiz #%d attempt %d: score %s, passed=%v",
				student.ID, quiz.ID, attempt.AttemptNumber, attempt.Score.String(), attempt.Passed)
			return attempt, nil
		}
		if errors.Is(err, repository.ErrDuplicateAttempt) {
			log.Printf("[AttemptService.RecordAttempt] attempt number collision for student #%d quiz #%d, retrying",
				student.ID, quiz.ID)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: recording attempt for student #%d quiz #%d", apperrors.ErrConcurrentConflict, studentID, quizID)
}

// insertAttempt runs one count-then-insert round in a single transaction.
func (s *AttemptService) insertAttempt(
	studentID uint,
	quiz *entity.Quiz,
	outcome AttemptOutcome,
	answers []entity.AttemptAnswer,
) (*entity.QuizAttempt, error) {
	var attempt *entity.QuizAttempt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		count, err := s.attemptRepo.CountByStudentAndQuiz(tx, studentID, quiz.ID)
		if err != nil {
			return fmt.Errorf("failed to count prior attempts: %w", err)
		}

		now := time.Now()
		attempt = &entity.QuizAttempt{
			StudentID:      studentID,
			QuizID:         quiz.ID,
			AttemptNumber:  int(count) + 1,
			TotalQuestions: len(quiz.Questions),
			CorrectAnswers: outcome.CorrectAnswers,
			Score:          outcome.TotalPoints,
			Passed:         outcome.Passed,
			StartedAt:      now,
			CompletedAt:    now,
			Answers:        answers,
		}
		return s.attemptRepo.Create(tx, attempt)
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// History returns the student's attempts on a quiz, newest attempt first.
func (s *AttemptService) History(studentID, quizID uint) ([]entity.QuizAttempt, error) {
	if _, err := s.userRepo.GetByID(studentID); err != nil {
		return nil, fmt.Errorf("student #%d: %w", studentID, err)
	}
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, fmt.Errorf("quiz #%d: %w", quizID, err)
	}
	return s.attemptRepo.GetHistory(studentID, quizID)
}
