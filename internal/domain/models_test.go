package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	for _, raw := range []string{"left", "right", "up", "down", "top", "LEFT", " Top "} {
		pos, err := ParsePosition(raw)
		require.NoError(t, err, raw)
		require.NotEmpty(t, pos)
	}

	for _, raw := range []string{"", "center", "bottom", "lefty"} {
		_, err := ParsePosition(raw)
		require.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}

func TestAllPositionsOrder(t *testing.T) {
	require.Equal(t,
		[]Position{PositionLeft, PositionRight, PositionUp, PositionDown, PositionTop},
		AllPositions())
}

func TestValidateReadingID(t *testing.T) {
	require.NoError(t, ValidateReadingID("r1"))
	require.NoError(t, ValidateReadingID("reading_2024-01"))

	require.ErrorIs(t, ValidateReadingID(""), ErrInvalidInput)
	require.ErrorIs(t, ValidateReadingID("../etc/passwd"), ErrInvalidInput)
	require.ErrorIs(t, ValidateReadingID("a b"), ErrInvalidInput)
}

func TestValidateLanguage(t *testing.T) {
	require.NoError(t, ValidateLanguage("en"))
	require.NoError(t, ValidateLanguage("Brazilian Portuguese"))

	require.ErrorIs(t, ValidateLanguage(""), ErrInvalidInput)
	require.ErrorIs(t, ValidateLanguage("123"), ErrInvalidInput)
}
