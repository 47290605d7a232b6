package entity

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

// Difficulty labels for quiz questions.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

// ParseDifficulty normalizes a difficulty label. Unknown labels fail with
// ErrMalformedDifficulty; an empty label is allowed and stays empty.
func ParseDifficulty(label string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "":
		return "", nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrMalformedDifficulty, label)
	}
}

// QuizQuestion represents one question inside a quiz definition. Identity is
// stable once persisted and survives edits that reference it.
type QuizQuestion struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	QuizID           uint             `gorm:"not null;index" json:"quiz_id"`
	QuestionText     string           `gorm:"size:1000;not null" json:"question_text"`
	QuestionImageURL string           `gorm:"size:500;not null;default:''" json:"question_image_url"`
	DifficultyLevel  string           `gorm:"size:20;not null;default:''" json:"difficulty_level"` // EASY, MEDIUM, HARD
	Points           int              `gorm:"not null;default:1" json:"points"`
	DisplayOrder     int              `gorm:"not null;default:0" json:"display_order"`
	Options          []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName sets the table name for GORM
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuestionOption represents one answer option of a question.
type QuestionOption struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	QuestionID     uint   `gorm:"not null;index" json:"question_id"`
	OptionText     string `gorm:"size:500;not null" json:"option_text"`
	OptionImageURL string `gorm:"size:500;not null;default:''" json:"option_image_url"`
	IsCorrect      bool   `gorm:"not null;default:false" json:"is_correct"`
	DisplayOrder   int    `gorm:"not null;default:0" json:"display_order"`
}

// TableName sets the table name for GORM
func (QuestionOption) TableName() string {
	return "question_options"
}
