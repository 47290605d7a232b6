package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{apperrors.ErrMalformedDifficulty, http.StatusUnprocessableEntity},
		{apperrors.ErrInsufficientBalance, http.StatusConflict},
		{apperrors.ErrAlreadyReviewed, http.StatusConflict},
		{apperrors.ErrConcurrentConflict, http.StatusConflict},
		{apperrors.ErrRewardCreditFailed, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, fmt.Errorf("handling request: %w", tc.err))
		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}

func TestRespondError_UnknownErrorHiddenBehind500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, fmt.Errorf("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
