package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Position identifies one of the five image slots within a reading.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
	PositionUp    Position = "up"
	PositionDown  Position = "down"
	PositionTop   Position = "top"
)

// AllPositions returns the five required positions in canonical order.
func AllPositions() []Position {
	return []Position{PositionLeft, PositionRight, PositionUp, PositionDown, PositionTop}
}

// ParsePosition normalizes and validates a position string.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PositionLeft, PositionRight, PositionUp, PositionDown, PositionTop:
		return p, nil
	}
	return "", fmt.Errorf("%w: position must be one of: left, right, up, down, top", ErrInvalidInput)
}

var readingIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateReadingID enforces the alphanumeric/underscore/hyphen id scheme.
func ValidateReadingID(id string) error {
	if !readingIDPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid reading_id: only alphanumeric, underscore, and hyphen allowed", ErrInvalidInput)
	}
	return nil
}

var languagePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z -]{0,31}$`)

// ValidateLanguage checks the target language for the final reading.
func ValidateLanguage(lang string) error {
	if !languagePattern.MatchString(strings.TrimSpace(lang)) {
		return fmt.Errorf("%w: invalid language", ErrInvalidInput)
	}
	return nil
}

// Observation is a single symbol detected in one of the cup images.
type Observation struct {
	Symbol   string  `json:"symbol"`
	Location string  `json:"location"`
	Strength float64 `json:"strength"`
	Meaning  string  `json:"meaning"`
	Image    string  `json:"image"`
}

// UploadResult describes a stored image slot.
type UploadResult struct {
	ReadingID     string `json:"reading_id"`
	FilePath      string `json:"file_path"`
	UploadedCount int    `json:"uploaded_count"`
	Message       string `json:"message"`
}

// AnalysisResult is the combined outcome of a full reading analysis.
type AnalysisResult struct {
	Readings     []Observation `json:"readings"`
	FinalReading string        `json:"final_reading"`
}
