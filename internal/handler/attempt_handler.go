package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/handler/dto"
	"github.com/yourusername/ecolearn-api/internal/service"
)

// AttemptHandler handles quiz attempt requests.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// AnswerRequest is one pre-graded answer of a submitted attempt.
type AnswerRequest struct {
	QuestionID       uint   `json:"question_id" binding:"required"`
	SelectedOptionID *uint  `json:"selected_option_id"`
	AnswerText       string `json:"answer_text" binding:"omitempty,max=1000"`
	IsCorrect        bool   `json:"is_correct"`
	PointsEarned     int    `json:"points_earned" binding:"min=0"`
}

// RecordAttemptRequest is a submitted attempt with its graded answers.
type RecordAttemptRequest struct {
	Answers []AnswerRequest `json:"answers" binding:"required,dive"`
}

// RecordAttempt scores and persists an attempt for the authenticated student
func (h *AttemptHandler) RecordAttempt(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	studentID := c.MustGet("userID").(uint)

	var req RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]entity.AttemptAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = entity.AttemptAnswer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			AnswerText:       a.AnswerText,
			IsCorrect:        a.IsCorrect,
			PointsEarned:     a.PointsEarned,
		}
	}

	attempt, err := h.attemptService.RecordAttempt(studentID, quizID, answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAttemptResponse(attempt, true))
}

// GetHistory returns the authenticated student's attempts on a quiz,
// newest first
func (h *AttemptHandler) GetHistory(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	studentID := c.MustGet("userID").(uint)

	attempts, err := h.attemptService.History(studentID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": dto.NewListAttemptResponse(attempts),
		"total":    len(attempts),
	})
}
