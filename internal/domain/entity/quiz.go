package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quiz represents a quiz definition. A quiz exclusively owns its questions;
// questions absent from an edit are cascade-removed on save.
type Quiz struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Title            string          `gorm:"size:200;not null" json:"title"`
	Description      string          `gorm:"size:1000;not null;default:''" json:"description"`
	TotalQuestions   int             `gorm:"not null;default:0" json:"total_questions"`
	PassingScore     decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"passing_score"`
	TimeLimitMinutes int             `gorm:"not null;default:0" json:"time_limit_minutes"`
	MaxAttempts      int             `gorm:"not null;default:1" json:"max_attempts"`
	IsActive         bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedByID      uint            `gorm:"not null;index" json:"created_by"`
	Questions        []QuizQuestion  `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Quiz) TableName() string {
	return "quizzes"
}
