package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecolearn-api/internal/service"
)

// ChallengeHandler handles eco-challenge submission and review requests.
type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeService *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// SubmitChallengeRequest is a student's eco-challenge submission
type SubmitChallengeRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	PointValue  int    `json:"point_value" binding:"required,min=1"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	ImageURL    string `json:"image_url" binding:"omitempty,max=500"`
}

// Submit creates a pending submission for the authenticated student
func (h *ChallengeHandler) Submit(c *gin.Context) {
	studentID := c.MustGet("userID").(uint)

	var req SubmitChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.challengeService.Submit(studentID, req.Title, req.PointValue, req.Description, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListPending returns submissions awaiting review, oldest first
func (h *ChallengeHandler) ListPending(c *gin.Context) {
	submissions, err := h.challengeService.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// ReviewChallengeRequest is a reviewer's decision. Approved is a pointer so a
// missing field fails validation instead of silently rejecting.
type ReviewChallengeRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// Review transitions a pending submission to APPROVED or REJECTED
func (h *ChallengeHandler) Review(c *gin.Context) {
	submissionID := c.MustGet("submissionID").(uint)
	reviewerID := c.MustGet("userID").(uint)

	var req ReviewChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.challengeService.Review(submissionID, reviewerID, *req.Approved)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}
