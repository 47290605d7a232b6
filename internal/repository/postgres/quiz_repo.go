package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

// QuizRepo implements repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create inserts a new quiz definition with its questions and options
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID returns a quiz definition without its questions
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions returns a quiz definition with questions and options,
// ordered by display order.
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.display_order ASC, quiz_questions.id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.display_order ASC, question_options.id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List returns quiz definitions with pagination and the total count
func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	var quizzes []entity.Quiz
	var total int64

	if err := r.db.Model(&entity.Quiz{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

// SaveDefinition persists a reconciled definition as one transaction: orphaned
// options and questions are deleted first, then the definition and its kept or
// new children are written with full association saves.
func (r *QuizRepo) SaveDefinition(quiz *entity.Quiz, removedQuestionIDs, removedOptionIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(removedOptionIDs) > 0 {
			if err := tx.Delete(&entity.QuestionOption{}, removedOptionIDs).Error; err != nil {
				return fmt.Errorf("failed to delete removed options: %w", err)
			}
		}
		if len(removedQuestionIDs) > 0 {
			if err := tx.Where("question_id IN ?", removedQuestionIDs).
				Delete(&entity.QuestionOption{}).Error; err != nil {
				return fmt.Errorf("failed to delete options of removed questions: %w", err)
			}
			if err := tx.Delete(&entity.QuizQuestion{}, removedQuestionIDs).Error; err != nil {
				return fmt.Errorf("failed to delete removed questions: %w", err)
			}
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(quiz).Error; err != nil {
			return fmt.Errorf("failed to save quiz definition: %w", err)
		}
		return nil
	})
}

// Delete removes a quiz definition with its questions and options
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (?)",
			tx.Model(&entity.QuizQuestion{}).Select("id").Where("quiz_id = ?", id),
		).Delete(&entity.QuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Quiz{}, id).Error
	})
}
