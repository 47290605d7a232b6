package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/handler/dto"
	"github.com/yourusername/ecolearn-api/internal/service"
)

// QuizHandler handles quiz definition requests.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// OptionRequest is one answer option of an authored question. A non-zero ID
// on update means "keep this option's identity".
type OptionRequest struct {
	ID             uint   `json:"id"`
	OptionText     string `json:"option_text" binding:"required,max=500"`
	OptionImageURL string `json:"option_image_url" binding:"omitempty,max=500"`
	IsCorrect      bool   `json:"is_correct"`
	DisplayOrder   int    `json:"display_order"`
}

// QuestionRequest is one authored question.
type QuestionRequest struct {
	ID               uint            `json:"id"`
	QuestionText     string          `json:"question_text" binding:"required,max=1000"`
	QuestionImageURL string          `json:"question_image_url" binding:"omitempty,max=500"`
	DifficultyLevel  string          `json:"difficulty_level" binding:"omitempty,max=20"`
	Points           int             `json:"points" binding:"required,min=1"`
	DisplayOrder     int             `json:"display_order"`
	Options          []OptionRequest `json:"options" binding:"required,min=2,dive"`
}

// QuizRequest is an authored quiz definition, used for both create and update.
type QuizRequest struct {
	Title            string            `json:"title" binding:"required,min=3,max=200"`
	Description      string            `json:"description" binding:"omitempty,max=1000"`
	TotalQuestions   int               `json:"total_questions" binding:"min=0"`
	PassingScore     decimal.Decimal   `json:"passing_score"`
	TimeLimitMinutes int               `json:"time_limit_minutes" binding:"min=0"`
	MaxAttempts      int               `json:"max_attempts" binding:"min=0"`
	IsActive         bool              `json:"is_active"`
	Questions        []QuestionRequest `json:"questions" binding:"dive"`
}

func (r QuizRequest) toInput() service.QuizInput {
	input := service.QuizInput{
		Title:            r.Title,
		Description:      r.Description,
		TotalQuestions:   r.TotalQuestions,
		PassingScore:     r.PassingScore,
		TimeLimitMinutes: r.TimeLimitMinutes,
		MaxAttempts:      r.MaxAttempts,
		IsActive:         r.IsActive,
	}
	for _, q := range r.Questions {
		question := service.QuestionInput{
			ID:               q.ID,
			QuestionText:     q.QuestionText,
			QuestionImageURL: q.QuestionImageURL,
			DifficultyLevel:  q.DifficultyLevel,
			Points:           q.Points,
			DisplayOrder:     q.DisplayOrder,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, service.OptionInput{
				ID:             o.ID,
				OptionText:     o.OptionText,
				OptionImageURL: o.OptionImageURL,
				IsCorrect:      o.IsCorrect,
				DisplayOrder:   o.DisplayOrder,
			})
		}
		input.Questions = append(input.Questions, question)
	}
	return input
}

// CreateQuiz handles quiz creation by a teacher or institution admin
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatorID := c.MustGet("userID").(uint)
	quiz, err := h.quizService.CreateQuiz(creatorID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, true, true))
}

// UpdateQuiz handles an identity-preserving edit of a quiz definition
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true, true))
}

// GetQuiz returns a definition without questions
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuiz(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, false, false))
}

// GetQuizWithQuestions returns a definition with questions and options.
// Students get the taking view: the is_correct flag is stripped so the
// answer key never reaches the client. Reviewers see the full definition.
func (h *QuizHandler) GetQuizWithQuestions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuizWithQuestions(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	revealAnswers := c.GetString("userRole") != entity.RoleStudent
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true, revealAnswers))
}

// ListQuizzes returns quiz definitions with pagination
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	quizzes, total, err := h.quizService.ListQuizzes(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedQuizResponse(quizzes, total, page, pageSize))
}

// DeleteQuiz removes a definition with its questions and options
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}
