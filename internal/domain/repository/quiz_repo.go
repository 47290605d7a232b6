package repository

import (
	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// QuizRepository defines persistence operations for quiz definitions.
// A definition exclusively owns its questions and their options.
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithQuestions loads the definition with questions and options,
	// ordered by display order.
	GetWithQuestions(id uint) (*entity.Quiz, error)
	List(limit, offset int) ([]entity.Quiz, int64, error)
	// SaveDefinition persists a reconciled definition in one transaction:
	// removed children are deleted first, then the definition and the kept or
	// new questions/options are written.
	SaveDefinition(quiz *entity.Quiz, removedQuestionIDs, removedOptionIDs []uint) error
	Delete(id uint) error
}
