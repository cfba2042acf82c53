package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

type localRepository struct {
	baseDir       string
	maxUploadSize int64
	log           *zap.Logger
}

// NewLocalRepository stores image slots as files under baseDir.
func NewLocalRepository(baseDir string, maxUploadSize int64, log *zap.Logger) (ImageRepository, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create base directory: %v", domain.ErrStorage, err)
	}

	return &localRepository{
		baseDir:       baseDir,
		maxUploadSize: maxUploadSize,
		log:           log,
	}, nil
}

func (r *localRepository) Put(ctx context.Context, readingID string, pos domain.Position, data []byte) (string, error) {
	if err := checkCapacity(data, r.maxUploadSize); err != nil {
		return "", err
	}

	readingDir := filepath.Join(r.baseDir, readingID)
	if err := os.MkdirAll(readingDir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create reading directory: %v", domain.ErrStorage, err)
	}

	path := filepath.Join(readingDir, fileName(pos))
	if err := os.WriteFile(path, data, 0644); err != nil {
		r.log.Error("Failed to write image file",
			zap.String("path", path),
			zap.Error(err))
		return "", fmt.Errorf("%w: local write failed: %v", domain.ErrStorage, err)
	}

	r.log.Info("Image stored on local disk",
		zap.String("reading_id", readingID),
		zap.String("position", string(pos)),
		zap.Int("size", len(data)))

	return path, nil
}

func (r *localRepository) Get(ctx context.Context, readingID string, pos domain.Position) ([]byte, error) {
	path := filepath.Join(r.baseDir, readingID, fileName(pos))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no image for reading %s at position %s", domain.ErrNotFound, readingID, pos)
		}
		return nil, fmt.Errorf("%w: local read failed: %v", domain.ErrStorage, err)
	}

	return data, nil
}

func (r *localRepository) Positions(ctx context.Context, readingID string) ([]domain.Position, error) {
	readingDir := filepath.Join(r.baseDir, readingID)

	entries, err := os.ReadDir(readingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to list reading directory: %v", domain.ErrStorage, err)
	}

	var positions []domain.Position
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pos, ok := positionFromFileName(entry.Name()); ok {
			positions = append(positions, pos)
		}
	}

	return positions, nil
}
