package readinglist

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ReadCurrentAdvancesCircularly(t *testing.T) {
	e, books, _ := newTestEngine(t, 1, 2)
	ctx := context.Background()
	assert.Equal(t, 1, e.Position())

	got, err := e.ReadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, bookMockingbird, got)
	assert.Equal(t, 1, books.reads[1])
	assert.Equal(t, 2, e.Position())

	got, err = e.ReadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, book1984, got)
	assert.Equal(t, 1, books.reads[2])
	assert.Equal(t, 1, e.Position())
}

func TestEngine_ReadCurrentStoreFailure(t *testing.T) {
	e, books, _ := newTestEngine(t, 1, 2)
	books.readErr = errors.New("disk full")

	_, err := e.ReadCurrent(context.Background())
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, e.Position(), "cursor must not advance on failure")
}

func TestEngine_ReadAllVisitsEveryBookOnce(t *testing.T) {
	e, books, _ := newTestEngine(t, 3, 1, 2)
	ctx := context.Background()
	require.NoError(t, e.Goto(2))

	read, err := e.ReadAll(ctx)
	require.NoError(t, err)

	require.Len(t, read, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{read[0].ID, read[1].ID, read[2].ID})
	for _, id := range []int{1, 2, 3} {
		assert.Equal(t, 1, books.reads[id], "book %d", id)
	}
	assert.Equal(t, 1, e.Position())
}

func TestEngine_ReadAllFailureKeepsCursor(t *testing.T) {
	e, books, _ := newTestEngine(t, 1, 2, 3)
	require.NoError(t, e.Goto(2))
	books.readErr = errors.New("disk full")

	read, err := e.ReadAll(context.Background())
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, read)
	assert.Equal(t, 2, e.Position())
}

func TestEngine_ReadRest(t *testing.T) {
	e, books, _ := newTestEngine(t, 1, 2, 3)
	ctx := context.Background()
	require.NoError(t, e.Goto(2))

	read, err := e.ReadRest(ctx)
	require.NoError(t, err)

	require.Len(t, read, 2)
	assert.Equal(t, 0, books.reads[1])
	assert.Equal(t, 1, books.reads[2])
	assert.Equal(t, 1, books.reads[3])
	assert.Equal(t, 1, e.Position())
}

func TestEngine_GotoAndRewind(t *testing.T) {
	e, _, _ := newTestEngine(t, 1, 2, 3)
	ctx := context.Background()

	require.NoError(t, e.Goto(3))
	cur, err := e.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, bookGatsby, cur)

	assert.ErrorIs(t, e.Goto(4), domain.ErrInvalidPosition)
	assert.ErrorIs(t, e.Goto(0), domain.ErrInvalidPosition)
	assert.Equal(t, 3, e.Position())

	require.NoError(t, e.Rewind())
	assert.Equal(t, 1, e.Position())
}

func TestEngine_GotoRandom(t *testing.T) {
	e, _, random := newTestEngine(t, 1, 2, 3)
	ctx := context.Background()

	random.value = 3
	require.NoError(t, e.GotoRandom(ctx))
	assert.Equal(t, 3, e.Position())
	assert.Equal(t, 3, random.upper, "upper bound is the list length")

	random.value = 4
	assert.ErrorIs(t, e.GotoRandom(ctx), domain.ErrRandomInvalidResponse)
	assert.Equal(t, 3, e.Position())

	random.err = domain.ErrRandomTimeout
	assert.ErrorIs(t, e.GotoRandom(ctx), domain.ErrRandomTimeout)
	assert.Equal(t, 3, e.Position())
}

func TestEngine_CursorStaleAfterRemoval(t *testing.T) {
	e, _, _ := newTestEngine(t, 1, 2, 3)
	ctx := context.Background()

	require.NoError(t, e.Goto(3))
	require.NoError(t, e.RemoveByPosition(1))

	// The cursor is not clamped when the list shrinks
	assert.Equal(t, 3, e.Position())
	_, err := e.ReadCurrent(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)

	read, err := e.ReadRest(ctx)
	require.NoError(t, err)
	assert.Empty(t, read)

	require.NoError(t, e.Rewind())
	got, err := e.ReadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, book1984, got)
}
