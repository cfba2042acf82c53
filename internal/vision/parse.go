package vision

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

// observationCandidate is the raw shape the detection prompt asks for.
type observationCandidate struct {
	Symbol   string    `json:"symbol"`
	Location string    `json:"location"`
	Strength flexFloat `json:"strength"`
	Meaning  string    `json:"meaning"`
}

// flexFloat tolerates models returning the strength as "7" instead of 7.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

var (
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment  = regexp.MustCompile(`(?m)^\s*//.*$`)
	reTrailing     = regexp.MustCompile(`,(\s*[}\]])`)
)

// sanitizeModelJSON strips code fences, comments and trailing commas, then
// keeps only the outermost JSON array.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	raw = reBlockComment.ReplaceAllString(raw, "")
	raw = reLineComment.ReplaceAllString(raw, "")
	raw = reTrailing.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// parseObservations validates the model output against the observation
// schema. Strength is clamped into [1,10] and entries without a symbol are
// discarded. An empty array is a valid result: some cup images genuinely
// show no symbols. Only output that is not a JSON array is a parse failure.
func parseObservations(raw string) ([]domain.Observation, error) {
	cleaned := sanitizeModelJSON(raw)

	if !strings.HasPrefix(cleaned, "[") {
		return nil, fmt.Errorf("%w: response is not a JSON array", domain.ErrParse)
	}

	var candidates []observationCandidate
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	observations := make([]domain.Observation, 0, len(candidates))
	for _, c := range candidates {
		symbol := strings.TrimSpace(c.Symbol)
		if symbol == "" {
			continue
		}
		strength := float64(c.Strength)
		if strength < 1 {
			strength = 1
		}
		if strength > 10 {
			strength = 10
		}
		observations = append(observations, domain.Observation{
			Symbol:   symbol,
			Location: strings.TrimSpace(c.Location),
			Strength: strength,
			Meaning:  strings.TrimSpace(c.Meaning),
		})
	}

	return observations, nil
}
