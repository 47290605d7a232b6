package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
)

// AttemptRepo implements repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo creates a new attempt repository
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// CountByStudentAndQuiz counts recorded attempts for the pair inside tx
func (r *AttemptRepo) CountByStudentAndQuiz(tx *gorm.DB, studentID, quizID uint) (int64, error) {
	var count int64
	err := tx.Model(&entity.QuizAttempt{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&count).Error
	return count, err
}

// Create inserts the attempt with its answer records inside tx. The
// (student_id, quiz_id, attempt_number) unique index rejects racing inserts.
func (r *AttemptRepo) Create(tx *gorm.DB, attempt *entity.QuizAttempt) error {
	if err := tx.Create(attempt).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: student #%d quiz #%d attempt %d",
				repository.ErrDuplicateAttempt, attempt.StudentID, attempt.QuizID, attempt.AttemptNumber)
		}
		return err
	}
	return nil
}

// GetHistory returns the student's attempts on a quiz, newest attempt first
func (r *AttemptRepo) GetHistory(studentID, quizID uint) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.
		Preload("Answers").
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Order("attempt_number DESC").
		Find(&attempts).Error
	return attempts, err
}
