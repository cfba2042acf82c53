package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

// ImageRepository persists one PNG blob per (reading id, position) slot.
// Put overwrites any prior content for the slot and returns the storage
// location. Both backends share the same key scheme and size ceiling so
// callers cannot tell them apart.
type ImageRepository interface {
	Put(ctx context.Context, readingID string, pos domain.Position, data []byte) (string, error)
	Get(ctx context.Context, readingID string, pos domain.Position) ([]byte, error)
	Positions(ctx context.Context, readingID string) ([]domain.Position, error)
}

// objectKey builds the deterministic per-slot key: <reading>/image_<pos>.png
func objectKey(readingID string, pos domain.Position) string {
	return readingID + "/" + fileName(pos)
}

func fileName(pos domain.Position) string {
	return fmt.Sprintf("image_%s.png", pos)
}

// positionFromFileName is the inverse of fileName; ok is false for files
// outside the slot naming scheme.
func positionFromFileName(name string) (domain.Position, bool) {
	if !strings.HasPrefix(name, "image_") || !strings.HasSuffix(name, ".png") {
		return "", false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, "image_"), ".png")
	pos, err := domain.ParsePosition(raw)
	if err != nil {
		return "", false
	}
	return pos, true
}

func checkCapacity(data []byte, limit int64) error {
	if int64(len(data)) > limit {
		return fmt.Errorf("%w: payload is %d bytes, limit is %d", domain.ErrCapacityExceeded, len(data), limit)
	}
	return nil
}
