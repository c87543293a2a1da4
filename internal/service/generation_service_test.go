package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-interviewprep-be/internal/constant"
	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/pkg/apperr"
	"ai-interviewprep-be/internal/repository/contract"
	"ai-interviewprep-be/internal/repository/memory"
	"ai-interviewprep-be/internal/repository/specification"
	"ai-interviewprep-be/internal/repository/unitofwork"
	"ai-interviewprep-be/pkg/genai"
	"ai-interviewprep-be/pkg/sse"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeInterviewRepo struct {
	interview *entity.Interview
}

func (r *fakeInterviewRepo) Create(ctx context.Context, i *entity.Interview) error { return nil }
func (r *fakeInterviewRepo) Update(ctx context.Context, i *entity.Interview) error { return nil }
func (r *fakeInterviewRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (r *fakeInterviewRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	return r.interview, nil
}
func (r *fakeInterviewRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error) {
	return nil, nil
}
func (r *fakeInterviewRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	user    *entity.User
	credits float64
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return r.user, nil
}
func (r *fakeUserRepo) DecrementCredits(ctx context.Context, userId uuid.UUID, amount float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.credits < amount {
		return false, nil
	}
	r.credits -= amount
	return true, nil
}

type fakeMcqRepo struct {
	mu       sync.Mutex
	existing []string
	created  []*entity.Mcq
}

func (r *fakeMcqRepo) CreateBatch(ctx context.Context, mcqs []*entity.Mcq) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, mcqs...)
	return nil
}
func (r *fakeMcqRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mcq, error) {
	return r.created, nil
}
func (r *fakeMcqRepo) FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error) {
	return r.existing, nil
}
func (r *fakeMcqRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.created)), nil
}

type fakeQuestionRepo struct{}

func (r *fakeQuestionRepo) CreateBatch(ctx context.Context, qs []*entity.Question) error { return nil }
func (r *fakeQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	return nil, nil
}
func (r *fakeQuestionRepo) FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error) {
	return nil, nil
}
func (r *fakeQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeFlashcardRepo struct{}

func (r *fakeFlashcardRepo) CreateBatch(ctx context.Context, cs []*entity.Flashcard) error {
	return nil
}
func (r *fakeFlashcardRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error) {
	return nil, nil
}
func (r *fakeFlashcardRepo) FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error) {
	return nil, nil
}
func (r *fakeFlashcardRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeBriefRepo struct {
	mu    sync.Mutex
	brief *entity.Brief
}

func (r *fakeBriefRepo) Upsert(ctx context.Context, b *entity.Brief) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brief = b
	return nil
}
func (r *fakeBriefRepo) FindByInterviewId(ctx context.Context, interviewId uuid.UUID) (*entity.Brief, error) {
	return r.brief, nil
}

type fakeCreditTxRepo struct{}

func (r *fakeCreditTxRepo) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	return nil
}
func (r *fakeCreditTxRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	return nil, nil
}

type fakeUow struct {
	interviews *fakeInterviewRepo
	users      *fakeUserRepo
	mcqs       *fakeMcqRepo
	questions  *fakeQuestionRepo
	flashcards *fakeFlashcardRepo
	briefs     *fakeBriefRepo
	creditTxs  *fakeCreditTxRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) UserRepository() contract.UserRepository {
	return u.users
}
func (u *fakeUow) InterviewRepository() contract.InterviewRepository {
	return u.interviews
}
func (u *fakeUow) McqRepository() contract.McqRepository {
	return u.mcqs
}
func (u *fakeUow) QuestionRepository() contract.QuestionRepository {
	return u.questions
}
func (u *fakeUow) FlashcardRepository() contract.FlashcardRepository {
	return u.flashcards
}
func (u *fakeUow) BriefRepository() contract.BriefRepository {
	return u.briefs
}
func (u *fakeUow) CreditTransactionRepository() contract.CreditTransactionRepository {
	return u.creditTxs
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// scriptedGenerator replays a fixed sequence of accumulated snapshots.
type scriptedGenerator struct {
	deltas  []string
	final   string
	err     error
	onDelta func() // hook invoked between deltas, for supersession tests
}

func (g *scriptedGenerator) Stream(ctx context.Context, req genai.Request, onDelta func(accumulated string)) (*genai.Result, error) {
	for _, d := range g.deltas {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		onDelta(d)
		if g.onDelta != nil {
			g.onDelta()
		}
	}
	if g.err != nil {
		return nil, g.err
	}
	return &genai.Result{
		Text:    g.final,
		Model:   "test-model",
		Usage:   genai.Usage{PromptTokens: 10, CompletionTokens: 90},
		Latency: 50 * time.Millisecond,
	}, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recordingWire struct {
	mu     sync.Mutex
	frames [][]byte
}

func (w *recordingWire) Write(frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	copied := make([]byte, len(frame))
	copy(copied, frame)
	w.frames = append(w.frames, copied)
	return nil
}

// ---- fixtures ----

type fixture struct {
	svc       IGenerationService
	uow       *fakeUow
	store     contract.StreamSessionRepository
	publisher *recordingPublisher
	userId    uuid.UUID
	interview *entity.Interview
}

func newFixture(t *testing.T, gen genai.Generator, credits float64) *fixture {
	t.Helper()

	userId := uuid.New()
	interview := &entity.Interview{
		Id:             uuid.New(),
		UserId:         userId,
		Role:           "Backend Engineer",
		Company:        "Acme",
		JobDescription: "Design and operate Go services at scale, including streaming APIs.",
		CreatedAt:      time.Now(),
	}

	uow := &fakeUow{
		interviews: &fakeInterviewRepo{interview: interview},
		users:      &fakeUserRepo{user: &entity.User{Id: userId, Credits: credits}, credits: credits},
		mcqs:       &fakeMcqRepo{},
		questions:  &fakeQuestionRepo{},
		flashcards: &fakeFlashcardRepo{},
		briefs:     &fakeBriefRepo{},
		creditTxs:  &fakeCreditTxRepo{},
	}

	store := memory.NewStreamSessionRepository(30 * time.Minute)
	publisher := &recordingPublisher{}

	svc := NewGenerationService(
		&fakeUowFactory{uow: uow},
		store,
		gen,
		publisher,
		nil,
		nopLogger{},
		2,
		0, // no throttling in tests: every delta flushes
	)

	return &fixture{
		svc:       svc,
		uow:       uow,
		store:     store,
		publisher: publisher,
		userId:    userId,
		interview: interview,
	}
}

func mcqRequest(count int) *dto.GenerateModulesRequest {
	return &dto.GenerateModulesRequest{
		Modules: []dto.ModuleRequest{{Module: constant.ModuleMcqs, Count: count}},
	}
}

func decodeFrame(t *testing.T, wire []byte) sse.Frame {
	t.Helper()
	s := string(wire)
	require.True(t, strings.HasPrefix(s, "data: "))
	require.True(t, strings.HasSuffix(s, "\n\n"))
	var f sse.Frame
	require.NoError(t, json.Unmarshal([]byte(s[len("data: "):len(s)-2]), &f))
	return f
}

// ---- tests ----

func TestPrepareGenerationValidation(t *testing.T) {
	gen := &scriptedGenerator{final: `{"items":[]}`}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.GenerateModulesRequest
	}{
		{"unknown module", &dto.GenerateModulesRequest{Modules: []dto.ModuleRequest{{Module: "poems"}}}},
		{"duplicate module", &dto.GenerateModulesRequest{Modules: []dto.ModuleRequest{{Module: "mcqs"}, {Module: "mcqs"}}}},
		{"count over cap", mcqRequest(constant.MaxModuleCount + 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, tt.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))
		})
	}
}

func TestPrepareGenerationForbiddenForOtherUser(t *testing.T) {
	f := newFixture(t, &scriptedGenerator{final: `{"items":[]}`}, 10)

	_, err := f.svc.PrepareGeneration(context.Background(), uuid.New(), f.interview.Id, mcqRequest(3))
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestPrepareGenerationQuota(t *testing.T) {
	f := newFixture(t, &scriptedGenerator{final: `{"items":[]}`}, 0.4)
	ctx := context.Background()

	// An earlier completed stream holds the scope key; the rejected request
	// must not disturb it.
	scopeKey := constant.ScopeKey(f.interview.Id, constant.ModuleMcqs)
	prior := entity.NewStreamSession(scopeKey, f.userId, 0)
	prior.Status = constant.StreamStatusCompleted
	require.NoError(t, f.store.Save(ctx, prior))

	_, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(3))
	require.Error(t, err)
	assert.Equal(t, apperr.KindQuotaExceeded, apperr.KindOf(err))

	status, err := f.store.GetStatus(ctx, scopeKey)
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusCompleted, status.Status)
	assert.Equal(t, prior.StreamId, status.StreamId)
	assert.Equal(t, prior.Epoch, status.Epoch)

	assert.Equal(t, 0.4, f.uow.users.credits, "a rejected request must not charge")
}

func TestPrepareGenerationByoKeySkipsCharge(t *testing.T) {
	f := newFixture(t, &scriptedGenerator{final: `{"items":[]}`}, 0)

	req := mcqRequest(3)
	req.ApiKey = "sk-user-own-key"
	plan, err := f.svc.PrepareGeneration(context.Background(), f.userId, f.interview.Id, req)
	require.NoError(t, err)
	assert.False(t, plan.Modules[0].Charged)
	assert.Equal(t, 0.0, f.uow.users.credits)
}

func TestPrepareGenerationRegistersActiveSession(t *testing.T) {
	f := newFixture(t, &scriptedGenerator{final: `{"items":[]}`}, 10)

	plan, err := f.svc.PrepareGeneration(context.Background(), f.userId, f.interview.Id, mcqRequest(3))
	require.NoError(t, err)
	require.NotEmpty(t, plan.StreamId())

	status, err := f.store.GetStatus(context.Background(), constant.ScopeKey(f.interview.Id, constant.ModuleMcqs))
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusActive, status.Status)
	assert.Equal(t, plan.StreamId(), status.StreamId)
}

func TestRunPlanHappyPath(t *testing.T) {
	finalText := `{"items":[` +
		`{"id":"goroutine-sched","question":"Q1","options":["a","b","c","d"],"answer_index":1,"explanation":"e1"},` +
		`{"id":"channel-select","question":"Q2","options":["a","b","c","d"],"answer_index":2,"explanation":"e2"}]}`
	gen := &scriptedGenerator{
		deltas: []string{
			`{"items":[{"id":"goroutine-sched","question":"Q1`,
			`{"items":[{"id":"goroutine-sched","question":"Q1","options":["a","b","c","d"],"answer_index":1,"explanation":"e1"}`,
			finalText,
		},
		final: finalText,
	}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(2))
	require.NoError(t, err)

	wire := &recordingWire{}
	f.svc.RunPlan(ctx, plan, wire)

	// Wire saw content frames then one done frame.
	require.GreaterOrEqual(t, len(wire.frames), 2)
	last := decodeFrame(t, wire.frames[len(wire.frames)-1])
	assert.Equal(t, sse.FrameTypeDone, last.Type)
	assert.Equal(t, constant.ModuleMcqs, last.Module)
	for _, frame := range wire.frames[:len(wire.frames)-1] {
		assert.Equal(t, sse.FrameTypeContent, decodeFrame(t, frame).Type)
	}

	// Items committed.
	require.Len(t, f.uow.mcqs.created, 2)
	assert.Equal(t, "goroutine-sched", f.uow.mcqs.created[0].ContentKey)

	// Session terminal.
	scopeKey := constant.ScopeKey(f.interview.Id, constant.ModuleMcqs)
	status, err := f.store.GetStatus(ctx, scopeKey)
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusCompleted, status.Status)

	// Replay buffer is byte-identical to the wire.
	buffered, err := f.store.ReadBuffer(ctx, scopeKey)
	require.NoError(t, err)
	require.Len(t, buffered, len(wire.frames))
	for i := range buffered {
		assert.Equal(t, string(wire.frames[i]), string(buffered[i]))
	}

	// Usage record published.
	require.Len(t, f.publisher.payloads, 1)
	var usage dto.PublishGenerationUsageMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &usage))
	assert.Equal(t, constant.ModuleMcqs, usage.Module)
	assert.Equal(t, 1.0, usage.Amount)
	assert.Equal(t, 2, usage.ItemCount)
	assert.Equal(t, "test-model", usage.Model)
}

func TestRunPlanDeduplicatesCommittedBatch(t *testing.T) {
	finalText := `{"items":[` +
		`{"id":"goroutine-sched","question":"dup","options":["a","b","c","d"],"answer_index":0,"explanation":"x"},` +
		`{"id":"mutex-vs-channel","question":"new","options":["a","b","c","d"],"answer_index":3,"explanation":"y"}]}`
	gen := &scriptedGenerator{deltas: []string{finalText}, final: finalText}
	f := newFixture(t, gen, 10)
	f.uow.mcqs.existing = []string{"goroutine-sched"}
	ctx := context.Background()

	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(2))
	require.NoError(t, err)
	f.svc.RunPlan(ctx, plan, &recordingWire{})

	require.Len(t, f.uow.mcqs.created, 1)
	assert.Equal(t, "mutex-vs-channel", f.uow.mcqs.created[0].ContentKey)
}

func TestRunPlanGeneratorFailureEmitsErrorFrame(t *testing.T) {
	gen := &scriptedGenerator{
		deltas: []string{`{"items":[{"id":"a","question":"partial`},
		err:    errors.New("upstream model timeout"),
	}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(2))
	require.NoError(t, err)

	wire := &recordingWire{}
	f.svc.RunPlan(ctx, plan, wire)

	require.NotEmpty(t, wire.frames)
	last := decodeFrame(t, wire.frames[len(wire.frames)-1])
	assert.Equal(t, sse.FrameTypeError, last.Type)
	assert.NotEmpty(t, last.Error)
	assert.NotContains(t, last.Error, "upstream model timeout", "internal detail must not leak to the client")

	status, err := f.store.GetStatus(ctx, constant.ScopeKey(f.interview.Id, constant.ModuleMcqs))
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusError, status.Status)

	assert.Empty(t, f.uow.mcqs.created, "failed generation must not commit items")
}

func TestRunPlanSupersededStreamGoesSilent(t *testing.T) {
	f := newFixture(t, nil, 10)
	ctx := context.Background()

	scopeKey := constant.ScopeKey(f.interview.Id, constant.ModuleMcqs)
	var takeover sync.Once
	gen := &scriptedGenerator{
		deltas: []string{
			`{"items":[{"id":"a","question":"one","options":["a","b","c","d"],"answer_index":0,"explanation":"x"}]}`,
			`{"items":[{"id":"a","question":"one","options":["a","b","c","d"],"answer_index":0,"explanation":"x"}]}`,
		},
		final: `{"items":[]}`,
		onDelta: func() {
			takeover.Do(func() {
				// A second generate request steals the scope key.
				fresh := entity.NewStreamSession(scopeKey, f.userId, 1)
				require.NoError(t, f.store.Save(ctx, fresh))
				require.NoError(t, f.store.ClearBuffer(ctx, scopeKey))
			})
		},
	}

	svc := NewGenerationService(
		&fakeUowFactory{uow: f.uow}, f.store, gen, f.publisher, nil, nopLogger{}, 2, 0,
	)

	plan, err := svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(1))
	require.NoError(t, err)

	wire := &recordingWire{}
	svc.RunPlan(ctx, plan, wire)

	// The superseded stream must not have written into the new owner's buffer
	// and must not have flipped its status.
	status, err := f.store.GetStatus(ctx, scopeKey)
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusActive, status.Status)
	assert.NotEqual(t, plan.StreamId(), status.StreamId)

	buffered, err := f.store.ReadBuffer(ctx, scopeKey)
	require.NoError(t, err)
	assert.Empty(t, buffered)

	assert.Empty(t, f.uow.mcqs.created, "superseded stream must discard its output")
}

// brokenBufferStore simulates a store whose session hash works but whose
// buffer writes fail, e.g. a partial Redis outage.
type brokenBufferStore struct {
	contract.StreamSessionRepository
}

func (s *brokenBufferStore) AppendToBuffer(ctx context.Context, scopeKey, streamId string, frame []byte) error {
	return errors.New("buffer write refused")
}

func TestRunPlanBufferOutageStillEndsWireStream(t *testing.T) {
	finalText := `{"items":[{"id":"x","question":"Q","options":["a","b","c","d"],"answer_index":0,"explanation":"e"}]}`
	gen := &scriptedGenerator{deltas: []string{finalText}, final: finalText}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	svc := NewGenerationService(
		&fakeUowFactory{uow: f.uow},
		&brokenBufferStore{StreamSessionRepository: f.store},
		gen, f.publisher, nil, nopLogger{}, 2, 0,
	)

	plan, err := svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(1))
	require.NoError(t, err)

	wire := &recordingWire{}
	svc.RunPlan(ctx, plan, wire)

	// The buffer never accepted a frame, but the connected client must still
	// receive a terminal error event instead of a silently dying stream.
	require.NotEmpty(t, wire.frames)
	last := decodeFrame(t, wire.frames[len(wire.frames)-1])
	assert.Equal(t, sse.FrameTypeError, last.Type)
	assert.Equal(t, constant.ModuleMcqs, last.Module)
	assert.NotEmpty(t, last.Error)
}

func TestRunPlanSurvivesClientDisconnect(t *testing.T) {
	finalText := `{"items":[{"id":"only-item","question":"Q","options":["a","b","c","d"],"answer_index":0,"explanation":"e"}]}`
	gen := &scriptedGenerator{deltas: []string{finalText}, final: finalText}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(1))
	require.NoError(t, err)

	// An sse.Writer over a dead connection: every flush fails.
	deadWire := sse.NewWriter(bufio.NewWriterSize(&failingWriter{}, 1))
	f.svc.RunPlan(ctx, plan, deadWire)

	scopeKey := constant.ScopeKey(f.interview.Id, constant.ModuleMcqs)
	status, err := f.store.GetStatus(ctx, scopeKey)
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusCompleted, status.Status, "generation must finish server-side after disconnect")

	require.Len(t, f.uow.mcqs.created, 1)

	buffered, err := f.store.ReadBuffer(ctx, scopeKey)
	require.NoError(t, err)
	assert.NotEmpty(t, buffered, "replay buffer still fills while the client is gone")
	assert.True(t, deadWire.ClientGone())
}

func TestRunPlanBriefUpsert(t *testing.T) {
	finalText := `{"sections":[{"id":"role-overview","title":"Role","body":"What the role expects."}]}`
	gen := &scriptedGenerator{deltas: []string{finalText}, final: finalText}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	req := &dto.GenerateModulesRequest{Modules: []dto.ModuleRequest{{Module: constant.ModuleBrief}}}
	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, req)
	require.NoError(t, err)
	f.svc.RunPlan(ctx, plan, &recordingWire{})

	require.NotNil(t, f.uow.briefs.brief)
	require.Len(t, f.uow.briefs.brief.Sections, 1)
	assert.Equal(t, "role-overview", f.uow.briefs.brief.Sections[0].Id)
	assert.Equal(t, "test-model", f.uow.briefs.brief.Model)
}

func TestStreamStatusAndReplay(t *testing.T) {
	finalText := `{"items":[{"id":"x","question":"Q","options":["a","b","c","d"],"answer_index":0,"explanation":"e"}]}`
	gen := &scriptedGenerator{deltas: []string{finalText}, final: finalText}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	// No session yet.
	status, err := f.svc.StreamStatus(ctx, f.userId, f.interview.Id, constant.ModuleMcqs)
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusNone, status.Status)

	_, err = f.svc.Replay(ctx, f.userId, f.interview.Id, constant.ModuleMcqs)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Run a generation, then poll and replay.
	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, mcqRequest(1))
	require.NoError(t, err)
	wire := &recordingWire{}
	f.svc.RunPlan(ctx, plan, wire)

	status, err = f.svc.StreamStatus(ctx, f.userId, f.interview.Id, constant.ModuleMcqs)
	require.NoError(t, err)
	assert.Equal(t, constant.StreamStatusCompleted, status.Status)
	assert.Equal(t, plan.StreamId(), status.StreamId)

	frames, err := f.svc.Replay(ctx, f.userId, f.interview.Id, constant.ModuleMcqs)
	require.NoError(t, err)
	require.Len(t, frames, len(wire.frames))
	for i := range frames {
		assert.Equal(t, string(wire.frames[i]), string(frames[i]))
	}
}

func TestRunPlanMultipleModulesAllTerminal(t *testing.T) {
	mcqText := `{"items":[{"id":"m1","question":"Q","options":["a","b","c","d"],"answer_index":0,"explanation":"e"}]}`
	gen := &scriptedGenerator{deltas: []string{mcqText}, final: mcqText}
	f := newFixture(t, gen, 10)
	ctx := context.Background()

	req := &dto.GenerateModulesRequest{Modules: []dto.ModuleRequest{
		{Module: constant.ModuleMcqs, Count: 1},
		{Module: constant.ModuleQuestions, Count: 1},
		{Module: constant.ModuleFlashcards, Count: 1},
	}}
	plan, err := f.svc.PrepareGeneration(ctx, f.userId, f.interview.Id, req)
	require.NoError(t, err)

	f.svc.RunPlan(ctx, plan, &recordingWire{})

	for _, module := range []string{constant.ModuleMcqs, constant.ModuleQuestions, constant.ModuleFlashcards} {
		status, err := f.store.GetStatus(ctx, constant.ScopeKey(f.interview.Id, module))
		require.NoError(t, err)
		assert.Contains(t,
			[]string{constant.StreamStatusCompleted, constant.StreamStatusError},
			status.Status,
			"module %s must reach a terminal state", module)
	}

	// Credits charged once for the whole request: 1 + 1 + 0.5.
	assert.InDelta(t, 7.5, f.uow.users.credits, 0.001)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("connection reset") }
