package service

import (
	"fmt"
	"log"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
)

// QuizService manages quiz definitions: creation, identity-preserving edits,
// reads and deletion.
type QuizService struct {
	quizRepo repository.QuizRepository
	userRepo repository.UserRepository
}

// NewQuizService creates a new quiz service
func NewQuizService(quizRepo repository.QuizRepository, userRepo repository.UserRepository) *QuizService {
	return &QuizService{
		quizRepo: quizRepo,
		userRepo: userRepo,
	}
}

// CreateQuiz persists a new definition authored by creatorID. Every incoming
// question and option is created fresh.
func (s *QuizService) CreateQuiz(creatorID uint, input QuizInput) (*entity.Quiz, error) {
	creator, err := s.userRepo.GetByID(creatorID)
	if err != nil {
		return nil, fmt.Errorf("creator #%d: %w", creatorID, err)
	}

	quiz, err := buildDefinition(input, creator.ID)
	if err != nil {
		return nil, err
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("[QuizService.CreateQuiz] quiz #%d created by user #%d with %d questions",
		quiz.ID, creator.ID, len(quiz.Questions))
	return quiz, nil
}

// UpdateQuiz reconciles the edited input against the persisted definition
// and saves the result. Questions and options referenced by ID keep their
// identity; children the edit omits are cascade-removed.
func (s *QuizService) UpdateQuiz(quizID uint, input QuizInput) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz #%d: %w", quizID, err)
	}

	removedQuestionIDs, removedOptionIDs, err := mergeDefinition(quiz, input)
	if err != nil {
		return nil, err
	}

	if err := s.quizRepo.SaveDefinition(quiz, removedQuestionIDs, removedOptionIDs); err != nil {
		return nil, fmt.Errorf("failed to save quiz #%d: %w", quizID, err)
	}

	log.Printf("[QuizService.UpdateQuiz] quiz #%d updated: %d questions kept or added, %d questions dropped, %d options dropped",
		quizID, len(quiz.Questions), len(removedQuestionIDs), len(removedOptionIDs))
	return quiz, nil
}

// GetQuiz returns a definition without questions
func (s *QuizService) GetQuiz(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(quizID)
}

// GetQuizWithQuestions returns a definition with questions and options
func (s *QuizService) GetQuizWithQuestions(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes returns definitions with pagination
func (s *QuizService) ListQuizzes(page, pageSize int) ([]entity.Quiz, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.quizRepo.List(pageSize, offset)
}

// DeleteQuiz removes a definition with its questions and options
func (s *QuizService) DeleteQuiz(quizID uint) error {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return fmt.Errorf("quiz #%d: %w", quizID, err)
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		return fmt.Errorf("failed to delete quiz #%d: %w", quizID, err)
	}
	log.Printf("[QuizService.DeleteQuiz] quiz #%d deleted", quizID)
	return nil
}
