// Package redisstream is the durable Stream Session Store. Sessions survive
// process restarts, which is what makes client resumption meaningful beyond
// a single server lifetime.
package redisstream

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ai-interviewprep-be/internal/constant"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type StreamSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStreamSessionRepository(rdb *redis.Client, ttl time.Duration) contract.StreamSessionRepository {
	return &StreamSessionRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func sessionKey(scopeKey string) string { return "stream:session:" + scopeKey }
func bufferKey(scopeKey string) string  { return "stream:buffer:" + scopeKey }

// Conditional writes run as single scripts so the owner check and the write
// cannot be interleaved by a superseding Save: a stale writer must never land
// a frame in the new owner's buffer.
var appendIfOwnerScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "stream_id") ~= ARGV[1] then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[2])
redis.call("PEXPIRE", KEYS[2], ARGV[3])
return 1
`)

var setStatusIfOwnerScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "stream_id") ~= ARGV[1] then
	return 0
end
redis.call("HSET", KEYS[1], "status", ARGV[2])
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return 1
`)

func (r *StreamSessionRepository) Save(ctx context.Context, session *entity.StreamSession) error {
	key := sessionKey(session.ScopeKey)

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"stream_id":  session.StreamId,
		"owner_id":   session.OwnerId.String(),
		"status":     session.Status,
		"epoch":      session.Epoch,
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save stream session: %w", err)
	}
	return nil
}

func (r *StreamSessionRepository) GetStatus(ctx context.Context, scopeKey string) (*entity.StreamSessionStatus, error) {
	fields, err := r.rdb.HGetAll(ctx, sessionKey(scopeKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("get stream session: %w", err)
	}
	if len(fields) == 0 {
		return &entity.StreamSessionStatus{Status: constant.StreamStatusNone}, nil
	}

	status := &entity.StreamSessionStatus{
		Status:   fields["status"],
		StreamId: fields["stream_id"],
	}
	if raw, ok := fields["epoch"]; ok {
		if epoch, err := strconv.ParseInt(raw, 10, 64); err == nil {
			status.Epoch = epoch
		}
	}
	if raw, ok := fields["created_at"]; ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			status.CreatedAt = &t
		}
	}
	return status, nil
}

func (r *StreamSessionRepository) SetStatus(ctx context.Context, scopeKey, streamId, status string) error {
	owned, err := setStatusIfOwnerScript.Run(ctx, r.rdb,
		[]string{sessionKey(scopeKey)},
		streamId, status, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("set stream status: %w", err)
	}
	if owned == 0 {
		return contract.ErrSessionSuperseded
	}
	return nil
}

func (r *StreamSessionRepository) ClearBuffer(ctx context.Context, scopeKey string) error {
	if err := r.rdb.Del(ctx, bufferKey(scopeKey)).Err(); err != nil {
		return fmt.Errorf("clear stream buffer: %w", err)
	}
	return nil
}

func (r *StreamSessionRepository) AppendToBuffer(ctx context.Context, scopeKey, streamId string, frame []byte) error {
	owned, err := appendIfOwnerScript.Run(ctx, r.rdb,
		[]string{sessionKey(scopeKey), bufferKey(scopeKey)},
		streamId, frame, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("append stream frame: %w", err)
	}
	if owned == 0 {
		return contract.ErrSessionSuperseded
	}
	return nil
}

func (r *StreamSessionRepository) ReadBuffer(ctx context.Context, scopeKey string) ([][]byte, error) {
	values, err := r.rdb.LRange(ctx, bufferKey(scopeKey), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read stream buffer: %w", err)
	}
	frames := make([][]byte, 0, len(values))
	for _, v := range values {
		frames = append(frames, []byte(v))
	}
	return frames, nil
}
