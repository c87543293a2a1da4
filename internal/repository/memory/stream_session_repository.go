// Package memory holds an in-process Stream Session Store. It is the dev and
// test stand-in for the Redis store and implements the same contract,
// including supersession checks and buffer replay ordering.
package memory

import (
	"context"
	"sync"
	"time"

	"ai-interviewprep-be/internal/constant"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

type StreamSessionRepository struct {
	mu       sync.Mutex
	sessions *gocache.Cache
	buffers  *gocache.Cache
}

func NewStreamSessionRepository(ttl time.Duration) contract.StreamSessionRepository {
	return &StreamSessionRepository{
		sessions: gocache.New(ttl, 10*time.Minute),
		buffers:  gocache.New(ttl, 10*time.Minute),
	}
}

func (r *StreamSessionRepository) Save(_ context.Context, session *entity.StreamSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions.SetDefault(session.ScopeKey, &copied)
	return nil
}

func (r *StreamSessionRepository) GetStatus(_ context.Context, scopeKey string) (*entity.StreamSessionStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.get(scopeKey)
	if !ok {
		return &entity.StreamSessionStatus{Status: constant.StreamStatusNone}, nil
	}
	createdAt := session.CreatedAt
	return &entity.StreamSessionStatus{
		Status:    session.Status,
		StreamId:  session.StreamId,
		Epoch:     session.Epoch,
		CreatedAt: &createdAt,
	}, nil
}

func (r *StreamSessionRepository) SetStatus(_ context.Context, scopeKey, streamId, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.get(scopeKey)
	if !ok || session.StreamId != streamId {
		return contract.ErrSessionSuperseded
	}
	session.Status = status
	r.sessions.SetDefault(scopeKey, session)
	return nil
}

func (r *StreamSessionRepository) ClearBuffer(_ context.Context, scopeKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffers.Delete(scopeKey)
	return nil
}

func (r *StreamSessionRepository) AppendToBuffer(_ context.Context, scopeKey, streamId string, frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.get(scopeKey)
	if !ok || session.StreamId != streamId {
		return contract.ErrSessionSuperseded
	}

	var frames [][]byte
	if existing, found := r.buffers.Get(scopeKey); found {
		frames = existing.([][]byte)
	}
	copied := make([]byte, len(frame))
	copy(copied, frame)
	r.buffers.SetDefault(scopeKey, append(frames, copied))
	return nil
}

func (r *StreamSessionRepository) ReadBuffer(_ context.Context, scopeKey string) ([][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, found := r.buffers.Get(scopeKey)
	if !found {
		return nil, nil
	}
	frames := existing.([][]byte)
	out := make([][]byte, len(frames))
	copy(out, frames)
	return out, nil
}

func (r *StreamSessionRepository) get(scopeKey string) (*entity.StreamSession, bool) {
	raw, found := r.sessions.Get(scopeKey)
	if !found {
		return nil, false
	}
	return raw.(*entity.StreamSession), true
}
