package memory

import (
	"context"
	"testing"
	"time"

	"ai-interviewprep-be/internal/constant"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() contract.StreamSessionRepository {
	return NewStreamSessionRepository(30 * time.Minute)
}

func newSession(scopeKey string) *entity.StreamSession {
	return entity.NewStreamSession(scopeKey, uuid.New(), 0)
}

func TestGetStatusUnknownScopeKeyIsNone(t *testing.T) {
	repo := newRepo()

	status, err := repo.GetStatus(context.Background(), "missing:brief")
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusNone, status.Status)
	assert.Empty(t, status.StreamId)
}

func TestSaveThenGetStatus(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	session := newSession("iv1:mcqs")

	require.NoError(t, repo.Save(ctx, session))

	status, err := repo.GetStatus(ctx, "iv1:mcqs")
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusActive, status.Status)
	assert.Equal(t, session.StreamId, status.StreamId)
	assert.Equal(t, int64(1), status.Epoch)
	require.NotNil(t, status.CreatedAt)
}

func TestSetStatusTerminalTransition(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	session := newSession("iv1:brief")
	require.NoError(t, repo.Save(ctx, session))

	require.NoError(t, repo.SetStatus(ctx, "iv1:brief", session.StreamId, constant.StreamStatusCompleted))

	status, err := repo.GetStatus(ctx, "iv1:brief")
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusCompleted, status.Status)
}

func TestConditionalWritesRejectStaleStreamId(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	old := newSession("iv1:questions")
	require.NoError(t, repo.Save(ctx, old))

	// A new attempt takes over the scope key.
	fresh := entity.NewStreamSession("iv1:questions", old.OwnerId, old.Epoch)
	require.NoError(t, repo.Save(ctx, fresh))

	err := repo.AppendToBuffer(ctx, "iv1:questions", old.StreamId, []byte("data: stale\n\n"))
	assert.ErrorIs(t, err, contract.ErrSessionSuperseded)

	err = repo.SetStatus(ctx, "iv1:questions", old.StreamId, constant.StreamStatusCompleted)
	assert.ErrorIs(t, err, contract.ErrSessionSuperseded)

	// The fresh owner still writes fine.
	require.NoError(t, repo.AppendToBuffer(ctx, "iv1:questions", fresh.StreamId, []byte("data: live\n\n")))
}

func TestBufferClearThenAppendReplayOrder(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	session := newSession("iv1:flashcards")
	require.NoError(t, repo.Save(ctx, session))

	require.NoError(t, repo.AppendToBuffer(ctx, "iv1:flashcards", session.StreamId, []byte("data: leftover\n\n")))
	require.NoError(t, repo.ClearBuffer(ctx, "iv1:flashcards"))

	frames := [][]byte{
		[]byte("data: one\n\n"),
		[]byte("data: two\n\n"),
		[]byte("data: three\n\n"),
	}
	for _, f := range frames {
		require.NoError(t, repo.AppendToBuffer(ctx, "iv1:flashcards", session.StreamId, f))
	}

	got, err := repo.ReadBuffer(ctx, "iv1:flashcards")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range frames {
		assert.Equal(t, string(frames[i]), string(got[i]), "replay must preserve emission order")
	}
}

func TestReadBufferEmptyScope(t *testing.T) {
	repo := newRepo()

	got, err := repo.ReadBuffer(context.Background(), "nothing:here")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBufferFramesAreCopied(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	session := newSession("iv1:brief")
	require.NoError(t, repo.Save(ctx, session))

	frame := []byte("data: original\n\n")
	require.NoError(t, repo.AppendToBuffer(ctx, "iv1:brief", session.StreamId, frame))
	frame[6] = 'X'

	got, err := repo.ReadBuffer(ctx, "iv1:brief")
	require.NoError(t, err)
	assert.Equal(t, "data: original\n\n", string(got[0]), "stored frame must not alias the caller's slice")
}

func TestEpochMonotonicAcrossRestarts(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	first := entity.NewStreamSession("iv1:mcqs", uuid.New(), 0)
	require.NoError(t, repo.Save(ctx, first))

	status, err := repo.GetStatus(ctx, "iv1:mcqs")
	require.NoError(t, err)

	second := entity.NewStreamSession("iv1:mcqs", first.OwnerId, status.Epoch)
	require.NoError(t, repo.Save(ctx, second))

	status, err = repo.GetStatus(ctx, "iv1:mcqs")
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.Epoch)
	assert.NotEqual(t, first.StreamId, second.StreamId)
}
