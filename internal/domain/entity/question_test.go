package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

func TestParseDifficulty_KnownLabels(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"EASY", DifficultyEasy},
		{"easy", DifficultyEasy},
		{" Medium ", DifficultyMedium},
		{"HARD", DifficultyHard},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.label)
		assert.NoError(t, err, "label %q", tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestParseDifficulty_UnknownLabelFails(t *testing.T) {
	for _, label := range []string{"IMPOSSIBLE", "easy-ish", "3"} {
		_, err := ParseDifficulty(label)
		assert.Error(t, err, "label %q", label)
		assert.True(t, errors.Is(err, apperrors.ErrMalformedDifficulty), "label %q", label)
	}
}
