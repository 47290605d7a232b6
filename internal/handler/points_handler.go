package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/ecolearn-api/internal/service"
)

// PointsHandler handles eco-points requests: stats, balance mutation and the
// leaderboard with its export formats.
type PointsHandler struct {
	pointsService *service.PointsService
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(pointsService *service.PointsService) *PointsHandler {
	return &PointsHandler{pointsService: pointsService}
}

// GetMyStats returns the authenticated student's balance and level
func (h *PointsHandler) GetMyStats(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	stats, err := h.pointsService.Stats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetStudentStats returns a student's balance and level for a reviewer
func (h *PointsHandler) GetStudentStats(c *gin.Context) {
	studentID := c.MustGet("studentID").(uint)

	stats, err := h.pointsService.Stats(studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PointsMutationRequest is a manual credit or debit of a student's balance
type PointsMutationRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// AwardPoints credits points to a student's balance
func (h *PointsHandler) AwardPoints(c *gin.Context) {
	studentID := c.MustGet("studentID").(uint)

	var req PointsMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.pointsService.Add(studentID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": account.UserID,
		"balance": account.Balance,
		"level":   account.Level(),
	})
}

// DeductPoints debits points from a student's balance
func (h *PointsHandler) DeductPoints(c *gin.Context) {
	studentID := c.MustGet("studentID").(uint)

	var req PointsMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.pointsService.Deduct(studentID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": account.UserID,
		"balance": account.Balance,
		"level":   account.Level(),
	})
}

// GetLeaderboard returns the top balances with names and levels
func (h *PointsHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	rows, err := h.pointsService.Leaderboard(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": rows,
		"total":       len(rows),
	})
}

// ExportLeaderboard exports the leaderboard in CSV or Excel format
// GET /api/points/leaderboard/export?format=csv|xlsx&limit=N
func (h *PointsHandler) ExportLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		limit = 100
	}
	format := c.DefaultQuery("format", "csv")

	rows, err := h.pointsService.Leaderboard(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

// exportCSV writes the leaderboard as CSV with proper escaping
func (h *PointsHandler) exportCSV(c *gin.Context, rows []service.LeaderboardRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel renders UTF-8 correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Rank", "Name", "Points", "Level"})
	for i, r := range rows {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(r.Name),
			strconv.Itoa(r.Points),
			r.Level,
		})
	}
}

// exportXLSX writes the leaderboard as an Excel file using a StreamWriter
func (h *PointsHandler) exportXLSX(c *gin.Context, rows []service.LeaderboardRow, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[PointsHandler] failed to create stream writer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	if err := sw.SetRow("A1", []interface{}{"Rank", "Name", "Points", "Level"}); err != nil {
		log.Printf("[PointsHandler] failed to write header row: %v", err)
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{i + 1, sanitizeForExcel(r.Name), r.Points, r.Level}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[PointsHandler] failed to write row %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[PointsHandler] failed to flush stream writer: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[PointsHandler] failed to write Excel response: %v", err)
	}
}

// sanitizeForExcel guards exported cells against formula injection
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
