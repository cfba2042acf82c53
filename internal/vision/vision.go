// Package vision holds the clients for the two hosted-model calls: symbol
// detection on a single trimmed image and narrative synthesis over the
// aggregated observations. Both capabilities are expressed as interfaces so
// the orchestrator and its tests never depend on a concrete provider.
package vision

import (
	"context"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

// SymbolDetector detects candidate symbols in a single trimmed cup image.
// source is the stored file name the observations are attributed to.
type SymbolDetector interface {
	Detect(ctx context.Context, imagePNG []byte, source string) ([]domain.Observation, error)
}

// ReadingSynthesizer turns the aggregated observations into one narrative
// in the requested language, returning the polished observation list and
// the narrative text.
type ReadingSynthesizer interface {
	Synthesize(ctx context.Context, language string, readings []domain.Observation) ([]domain.Observation, string, error)
}
