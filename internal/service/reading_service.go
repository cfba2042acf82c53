package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
	"github.com/shubhamjangid510/coffe-cup/internal/repository"
	"github.com/shubhamjangid510/coffe-cup/internal/vision"
	"github.com/shubhamjangid510/coffe-cup/pkg/imageproc"
)

// ReadingService orchestrates the upload bookkeeping and the two-stage
// analysis pipeline over a reading's five positional images.
type ReadingService interface {
	UploadImage(ctx context.Context, readingID, position, filename string, data []byte) (*domain.UploadResult, error)
	Analyze(ctx context.Context, readingID, language string) (*domain.AnalysisResult, error)
	Images(ctx context.Context, readingID string) ([]domain.Position, error)
}

var supportedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {},
	".png":  {},
	".webp": {},
	".bmp":  {},
	".tiff": {}, ".tif": {},
	".gif": {},
}

type readingService struct {
	repo          repository.ImageRepository
	detector      vision.SymbolDetector
	synthesizer   vision.ReadingSynthesizer
	maxUploadSize int64
	log           *zap.Logger
}

func NewReadingService(
	repo repository.ImageRepository,
	detector vision.SymbolDetector,
	synthesizer vision.ReadingSynthesizer,
	maxUploadSize int64,
	log *zap.Logger,
) ReadingService {
	return &readingService{
		repo:          repo,
		detector:      detector,
		synthesizer:   synthesizer,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (s *readingService) UploadImage(ctx context.Context, readingID, position, filename string, data []byte) (*domain.UploadResult, error) {
	if err := domain.ValidateReadingID(readingID); err != nil {
		return nil, err
	}

	pos, err := domain.ParsePosition(position)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: file size %d exceeds %d bytes", domain.ErrCapacityExceeded, len(data), s.maxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := supportedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: unsupported file format: %s", domain.ErrInvalidInput, filename)
	}

	// Every slot is stored as PNG; a payload that cannot be decoded is
	// rejected here instead of failing later during analysis.
	pngData, err := imageproc.ConvertToPNG(data)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Positions(ctx, readingID)
	if err != nil {
		return nil, err
	}
	overwrite := containsPosition(existing, pos)

	location, err := s.repo.Put(ctx, readingID, pos, pngData)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Positions(ctx, readingID)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Image at position %s uploaded successfully", pos)
	if overwrite {
		message = fmt.Sprintf("Image at position %s uploaded (overwritten) successfully", pos)
	}

	s.log.Info("Image uploaded",
		zap.String("reading_id", readingID),
		zap.String("position", string(pos)),
		zap.Int("uploaded_count", len(updated)),
		zap.Bool("overwrite", overwrite))

	return &domain.UploadResult{
		ReadingID:     readingID,
		FilePath:      location,
		UploadedCount: len(updated),
		Message:       message,
	}, nil
}

func (s *readingService) Analyze(ctx context.Context, readingID, language string) (*domain.AnalysisResult, error) {
	if err := domain.ValidateReadingID(readingID); err != nil {
		return nil, err
	}
	if err := domain.ValidateLanguage(language); err != nil {
		return nil, err
	}

	present, err := s.repo.Positions(ctx, readingID)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, pos := range domain.AllPositions() {
		if !containsPosition(present, pos) {
			missing = append(missing, string(pos))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing images for positions: %s", domain.ErrMissingImages, strings.Join(missing, ", "))
	}

	var all []domain.Observation
	for _, pos := range domain.AllPositions() {
		data, err := s.repo.Get(ctx, readingID, pos)
		if err != nil {
			return nil, err
		}

		trimmed, err := imageproc.TrimPNG(data)
		if err != nil {
			return nil, err
		}

		source := fmt.Sprintf("image_%s.png", pos)
		observations, err := s.detector.Detect(ctx, trimmed, source)
		if err != nil {
			return nil, err
		}
		all = append(all, observations...)
	}

	refined, narrative, err := s.synthesizer.Synthesize(ctx, language, all)
	if err != nil {
		return nil, err
	}

	s.log.Info("Reading analyzed",
		zap.String("reading_id", readingID),
		zap.String("language", language),
		zap.Int("observations", len(refined)))

	return &domain.AnalysisResult{
		Readings:     refined,
		FinalReading: narrative,
	}, nil
}

func (s *readingService) Images(ctx context.Context, readingID string) ([]domain.Position, error) {
	if err := domain.ValidateReadingID(readingID); err != nil {
		return nil, err
	}
	return s.repo.Positions(ctx, readingID)
}

func containsPosition(positions []domain.Position, pos domain.Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}
