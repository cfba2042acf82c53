package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

func newTestRepo(t *testing.T, maxSize int64) ImageRepository {
	t.Helper()
	repo, err := NewLocalRepository(t.TempDir(), maxSize, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func TestLocalRepository_PutGetRoundtrip(t *testing.T) {
	repo := newTestRepo(t, 1024)
	ctx := context.Background()

	location, err := repo.Put(ctx, "r1", domain.PositionLeft, []byte("png-bytes"))
	require.NoError(t, err)
	require.Contains(t, location, "image_left.png")

	data, err := repo.Get(ctx, "r1", domain.PositionLeft)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestLocalRepository_PutOverwritesSlot(t *testing.T) {
	repo := newTestRepo(t, 1024)
	ctx := context.Background()

	_, err := repo.Put(ctx, "r1", domain.PositionTop, []byte("first"))
	require.NoError(t, err)
	_, err = repo.Put(ctx, "r1", domain.PositionTop, []byte("second"))
	require.NoError(t, err)

	data, err := repo.Get(ctx, "r1", domain.PositionTop)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), data)

	positions, err := repo.Positions(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, positions, 1)
}

func TestLocalRepository_GetMissingSlot(t *testing.T) {
	repo := newTestRepo(t, 1024)

	_, err := repo.Get(context.Background(), "r1", domain.PositionDown)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalRepository_CapacityCeiling(t *testing.T) {
	repo := newTestRepo(t, 8)

	_, err := repo.Put(context.Background(), "r1", domain.PositionUp, []byte("way too large payload"))
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestLocalRepository_PositionsForUnknownReading(t *testing.T) {
	repo := newTestRepo(t, 1024)

	positions, err := repo.Positions(context.Background(), "nope")
	require.NoError(t, err)
	require.Empty(t, positions)
}

func TestLocalRepository_PositionsIgnoresForeignFiles(t *testing.T) {
	repo := newTestRepo(t, 1024)
	ctx := context.Background()

	_, err := repo.Put(ctx, "r1", domain.PositionLeft, []byte("a"))
	require.NoError(t, err)
	_, err = repo.Put(ctx, "r1", domain.PositionRight, []byte("b"))
	require.NoError(t, err)

	positions, err := repo.Positions(ctx, "r1")
	require.NoError(t, err)
	require.ElementsMatch(t, []domain.Position{domain.PositionLeft, domain.PositionRight}, positions)
}
