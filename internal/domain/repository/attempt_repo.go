package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// AttemptRepository defines persistence operations for quiz attempts.
// Methods taking tx join a caller-owned transaction so the count-then-insert
// sequence commits as one unit.
type AttemptRepository interface {
	// CountByStudentAndQuiz returns the number of recorded attempts for the
	// (student, quiz) pair, read inside tx.
	CountByStudentAndQuiz(tx *gorm.DB, studentID, quizID uint) (int64, error)
	// Create inserts the attempt with its answer records inside tx. A
	// duplicate (student, quiz, attempt_number) surfaces as ErrDuplicateAttempt.
	Create(tx *gorm.DB, attempt *entity.QuizAttempt) error
	// GetHistory returns the student's attempts on a quiz, descending by
	// attempt number, answers included.
	GetHistory(studentID, quizID uint) ([]entity.QuizAttempt, error)
}
