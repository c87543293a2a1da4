package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-interviewprep-be/internal/constant"
	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/pkg/apperr"
	"ai-interviewprep-be/internal/pkg/logger"
	"ai-interviewprep-be/internal/repository/contract"
	"ai-interviewprep-be/internal/repository/specification"
	"ai-interviewprep-be/internal/repository/unitofwork"
	"ai-interviewprep-be/pkg/dedup"
	"ai-interviewprep-be/pkg/events"
	"ai-interviewprep-be/pkg/genai"
	pktNats "ai-interviewprep-be/pkg/nats"
	"ai-interviewprep-be/pkg/sse"
	"ai-interviewprep-be/pkg/stream"

	"github.com/google/uuid"
)

// FrameWriter pushes encoded SSE frames to the live client. Implemented by
// sse.Writer; shared by the concurrent module jobs of one request.
type FrameWriter interface {
	Write(frame []byte) error
}

// GenerationPlan is the validated, charged, session-registered form of a
// generate request. Preparing the plan and running it are separate steps so
// the controller can send SSE headers between the two.
type GenerationPlan struct {
	UserId    uuid.UUID
	Interview *entity.Interview
	ApiKey    string
	Model     string
	Modules   []*ModuleJob
}

// StreamId returns the id the response headers should carry. All jobs of one
// request share a single generation attempt id.
func (p *GenerationPlan) StreamId() string {
	if len(p.Modules) == 0 {
		return ""
	}
	return p.Modules[0].Session.StreamId
}

type ModuleJob struct {
	Module       string
	Count        int
	Instructions string
	Session      *entity.StreamSession
	Cost         float64
	Charged      bool
}

type IGenerationService interface {
	// PrepareGeneration validates, authorizes, charges and registers stream
	// sessions for every requested module. Nothing has been generated yet
	// when it returns.
	PrepareGeneration(ctx context.Context, userId, interviewId uuid.UUID, req *dto.GenerateModulesRequest) (*GenerationPlan, error)

	// RunPlan executes the plan's module jobs with bounded concurrency,
	// pushing frames to wire. It blocks until every job reached a terminal
	// state. Client disconnects do not stop it; ctx is the server-side
	// generation deadline, not the request context.
	RunPlan(ctx context.Context, plan *GenerationPlan, wire FrameWriter)

	StreamStatus(ctx context.Context, userId, interviewId uuid.UUID, module string) (*dto.StreamStatusResponse, error)

	// Replay returns the buffered wire frames for the scope key, byte for
	// byte in original emission order.
	Replay(ctx context.Context, userId, interviewId uuid.UUID, module string) ([][]byte, error)
}

type generationService struct {
	uowFactory       unitofwork.RepositoryFactory
	streamStore      contract.StreamSessionRepository
	generator        genai.Generator
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger

	concurrency      int
	throttleInterval time.Duration
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	streamStore contract.StreamSessionRepository,
	generator genai.Generator,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	concurrency int,
	throttleInterval time.Duration,
) IGenerationService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &generationService{
		uowFactory:       uowFactory,
		streamStore:      streamStore,
		generator:        generator,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		concurrency:      concurrency,
		throttleInterval: throttleInterval,
	}
}

func (s *generationService) PrepareGeneration(ctx context.Context, userId, interviewId uuid.UUID, req *dto.GenerateModulesRequest) (*GenerationPlan, error) {
	jobs, err := buildModuleJobs(req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: interviewId})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, apperr.NotFound("interview not found")
	}
	if interview.UserId != userId {
		return nil, apperr.Forbidden("interview belongs to another user")
	}

	plan := &GenerationPlan{
		UserId:    userId,
		Interview: interview,
		ApiKey:    req.ApiKey,
		Model:     req.Model,
		Modules:   jobs,
	}

	// BYO API key requests run on the caller's credential and are free.
	if req.ApiKey == "" {
		var total float64
		for _, job := range jobs {
			total += job.Cost
		}
		ok, err := uow.UserRepository().DecrementCredits(ctx, userId, total)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.QuotaExceeded(fmt.Sprintf("insufficient credits: need %.1f", total))
		}
		for _, job := range jobs {
			job.Charged = true
		}
	}

	// Register one shared stream id across the request's modules. Saving
	// overwrites any prior session for the scope key, so a still-running
	// older generation is superseded from this point on.
	streamId := uuid.New().String()
	for _, job := range jobs {
		scopeKey := constant.ScopeKey(interview.Id, job.Module)

		prev, err := s.streamStore.GetStatus(ctx, scopeKey)
		if err != nil {
			return nil, err
		}

		session := entity.NewStreamSession(scopeKey, userId, prev.Epoch)
		session.StreamId = streamId
		if err := s.streamStore.Save(ctx, session); err != nil {
			return nil, err
		}
		if err := s.streamStore.ClearBuffer(ctx, scopeKey); err != nil {
			return nil, err
		}
		job.Session = session
	}

	return plan, nil
}

func buildModuleJobs(req *dto.GenerateModulesRequest) ([]*ModuleJob, error) {
	jobs := make([]*ModuleJob, 0, len(req.Modules))
	seen := make(map[string]struct{}, len(req.Modules))

	for _, m := range req.Modules {
		if !constant.IsValidModule(m.Module) {
			return nil, apperr.Invalid(fmt.Sprintf("unknown module %q", m.Module))
		}
		if _, ok := seen[m.Module]; ok {
			return nil, apperr.Invalid(fmt.Sprintf("module %q requested twice", m.Module))
		}
		seen[m.Module] = struct{}{}

		count := m.Count
		if count == 0 {
			count = constant.DefaultModuleCounts[m.Module]
		}
		if count < 1 || count > constant.MaxModuleCount {
			return nil, apperr.Invalid(fmt.Sprintf("count for %q must be between 1 and %d", m.Module, constant.MaxModuleCount))
		}
		if m.Module == constant.ModuleBrief {
			count = 1
		}

		jobs = append(jobs, &ModuleJob{
			Module:       m.Module,
			Count:        count,
			Instructions: m.Instructions,
			Cost:         constant.ModuleCreditCosts[m.Module],
		})
	}
	return jobs, nil
}

func (s *generationService) RunPlan(ctx context.Context, plan *GenerationPlan, wire FrameWriter) {
	jobs := make([]stream.Job, len(plan.Modules))
	for i, job := range plan.Modules {
		job := job
		jobs[i] = func(ctx context.Context) error {
			return s.runModule(ctx, plan, job, wire)
		}
	}

	errs := stream.RunLimited(ctx, s.concurrency, jobs)
	for i, err := range errs {
		if err == nil || errors.Is(err, contract.ErrSessionSuperseded) {
			continue
		}
		s.logger.Error("GenerationService", "module generation failed", map[string]interface{}{
			"interview_id": plan.Interview.Id,
			"module":       plan.Modules[i].Module,
			"error":        err.Error(),
		})
	}
}

// runModule is one generation job: stream the model, throttle partial frames
// to wire and replay buffer, then parse, dedup, commit and close the stream.
// Every terminal path emits either a done or an error frame, except
// supersession, where a newer stream id owns the scope key and this job must
// go silent.
func (s *generationService) runModule(ctx context.Context, plan *GenerationPlan, job *ModuleJob, wire FrameWriter) error {
	scopeKey := constant.ScopeKey(plan.Interview.Id, job.Module)

	// The replay buffer and the wire see the exact same bytes in the same
	// order. Buffer append is conditional on still owning the scope key.
	emit := func(frame []byte) error {
		if err := s.streamStore.AppendToBuffer(ctx, scopeKey, job.Session.StreamId, frame); err != nil {
			return err
		}
		return wire.Write(frame)
	}
	throttle := stream.NewThrottle(s.throttleInterval, emit)

	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var emitErr error
	result, genErr := s.generator.Stream(genCtx, genai.Request{
		System:    constant.GenerationSystemPrompt,
		Prompt:    buildModulePrompt(job, plan.Interview),
		Model:     plan.Model,
		MaxTokens: maxTokensFor(job),
		APIKey:    plan.ApiKey,
	}, func(accumulated string) {
		if emitErr != nil {
			return
		}
		payload, ok := decodeModulePayload(job.Module, accumulated)
		if !ok {
			return
		}
		frame, err := sse.Frame{Type: sse.FrameTypeContent, Module: job.Module, Data: payload}.Encode()
		if err != nil {
			return
		}
		if emitErr = throttle.Emit(frame); emitErr != nil {
			// Superseded or store failure: stop burning tokens.
			cancel()
		}
	})

	if errors.Is(emitErr, contract.ErrSessionSuperseded) {
		return contract.ErrSessionSuperseded
	}
	if emitErr != nil {
		return s.failModule(ctx, scopeKey, job, wire, emitErr)
	}
	if genErr != nil {
		return s.failModule(ctx, scopeKey, job, wire, apperr.Wrap(apperr.KindGeneratorFailure, "model stream failed", genErr))
	}

	committed, payload, err := s.commitModule(ctx, plan, job, result)
	if err != nil {
		return s.failModule(ctx, scopeKey, job, wire, err)
	}

	// Final content frame carries the complete committed payload; it must
	// reach the client even when the throttle window is still open.
	finalFrame, err := (sse.Frame{Type: sse.FrameTypeContent, Module: job.Module, Data: payload}).Encode()
	if err != nil {
		return s.failModule(ctx, scopeKey, job, wire, err)
	}
	if err := throttle.Emit(finalFrame); err != nil {
		return s.failModule(ctx, scopeKey, job, wire, err)
	}
	if err := throttle.Flush(); err != nil {
		return s.failModule(ctx, scopeKey, job, wire, err)
	}

	doneData, _ := json.Marshal(map[string]interface{}{
		"items_committed": committed,
		"model":           result.Model,
	})
	doneFrame, err := (sse.Frame{Type: sse.FrameTypeDone, Module: job.Module, Data: doneData}).Encode()
	if err != nil {
		return err
	}
	if err := emit(doneFrame); err != nil {
		return err
	}
	if err := s.streamStore.SetStatus(ctx, scopeKey, job.Session.StreamId, constant.StreamStatusCompleted); err != nil {
		return err
	}

	s.recordUsage(ctx, plan, job, result, committed)
	s.publishCompletionEvent(ctx, plan, job, committed)
	return nil
}

// failModule turns any post-start failure into a terminal error frame plus an
// error session status. Supersession wins over error reporting: once the
// scope key has a new owner this stream stays silent.
func (s *generationService) failModule(ctx context.Context, scopeKey string, job *ModuleJob, wire FrameWriter, cause error) error {
	if errors.Is(cause, contract.ErrSessionSuperseded) {
		return contract.ErrSessionSuperseded
	}

	frame, err := (sse.Frame{
		Type:   sse.FrameTypeError,
		Module: job.Module,
		Error:  apperr.ClientMessage(cause),
	}).Encode()
	if err == nil {
		appendErr := s.streamStore.AppendToBuffer(ctx, scopeKey, job.Session.StreamId, frame)
		if errors.Is(appendErr, contract.ErrSessionSuperseded) {
			return contract.ErrSessionSuperseded
		}
		if appendErr != nil {
			// The replay buffer will miss the terminal frame, but a live
			// client must still see the stream end.
			s.logger.Warn("GenerationService", "failed to buffer terminal error frame", map[string]interface{}{
				"scope_key": scopeKey,
				"error":     appendErr.Error(),
			})
		}
		_ = wire.Write(frame)
	}

	if statusErr := s.streamStore.SetStatus(ctx, scopeKey, job.Session.StreamId, constant.StreamStatusError); statusErr != nil && !errors.Is(statusErr, contract.ErrSessionSuperseded) {
		s.logger.Error("GenerationService", "failed to mark stream errored", map[string]interface{}{
			"scope_key": scopeKey,
			"error":     statusErr.Error(),
		})
	}
	return cause
}

// Generated payload shapes, mirroring the JSON contracts in the module
// prompts. The item "id" slug doubles as the dedup content key.

type briefPayload struct {
	Sections []entity.BriefSection `json:"sections"`
}

type mcqItem struct {
	Id          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

type mcqPayload struct {
	Items []mcqItem `json:"items"`
}

type questionItem struct {
	Id       string `json:"id"`
	Prompt   string `json:"prompt"`
	Guidance string `json:"guidance"`
	Category string `json:"category"`
}

type questionPayload struct {
	Items []questionItem `json:"items"`
}

type flashcardItem struct {
	Id    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type flashcardPayload struct {
	Items []flashcardItem `json:"items"`
}

// decodeModulePayload attempts to shape the accumulated model output into the
// module's payload. Output that is still mid-token simply reports not-ok and
// the caller waits for the next delta.
func decodeModulePayload(module, accumulated string) (json.RawMessage, bool) {
	var payload interface{}
	switch module {
	case constant.ModuleBrief:
		payload = &briefPayload{}
	case constant.ModuleMcqs:
		payload = &mcqPayload{}
	case constant.ModuleQuestions:
		payload = &questionPayload{}
	case constant.ModuleFlashcards:
		payload = &flashcardPayload{}
	default:
		return nil, false
	}

	if err := genai.DecodePartial(accumulated, payload); err != nil {
		return nil, false
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	return data, true
}

func buildModulePrompt(job *ModuleJob, interview *entity.Interview) string {
	instructions := job.Instructions
	if instructions == "" {
		instructions = "none"
	}

	switch job.Module {
	case constant.ModuleBrief:
		return fmt.Sprintf(constant.BriefPromptTemplate, interview.Role, interview.Company, interview.JobDescription, instructions)
	case constant.ModuleMcqs:
		return fmt.Sprintf(constant.McqPromptTemplate, job.Count, interview.Role, interview.Company, interview.JobDescription, instructions)
	case constant.ModuleQuestions:
		return fmt.Sprintf(constant.QuestionPromptTemplate, job.Count, interview.Role, interview.Company, interview.JobDescription, instructions)
	case constant.ModuleFlashcards:
		return fmt.Sprintf(constant.FlashcardPromptTemplate, job.Count, interview.Role, interview.Company, interview.JobDescription, instructions)
	}
	return ""
}

func maxTokensFor(job *ModuleJob) int {
	if job.Module == constant.ModuleBrief {
		return 2048
	}
	tokens := 512 + 220*job.Count
	if tokens > 4096 {
		tokens = 4096
	}
	return tokens
}

// commitModule parses the final model output, drops items whose content key
// already exists for the interview, and persists the remainder in one
// transaction. It returns the committed item count and the payload for the
// final content frame (already filtered, so the client sees exactly what was
// stored).
func (s *generationService) commitModule(ctx context.Context, plan *GenerationPlan, job *ModuleJob, result *genai.Result) (int, json.RawMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	switch job.Module {
	case constant.ModuleBrief:
		var payload briefPayload
		if err := genai.DecodePartial(result.Text, &payload); err != nil {
			return 0, nil, apperr.Wrap(apperr.KindGeneratorFailure, "model produced undecodable brief", err)
		}
		brief := &entity.Brief{
			Id:          uuid.New(),
			InterviewId: plan.Interview.Id,
			Sections:    payload.Sections,
			Model:       result.Model,
			CreatedAt:   time.Now(),
		}
		if err := uow.BriefRepository().Upsert(ctx, brief); err != nil {
			return 0, nil, apperr.Wrap(apperr.KindPersistenceFailure, "failed to store brief", err)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		return len(payload.Sections), data, nil

	case constant.ModuleMcqs:
		var payload mcqPayload
		if err := genai.DecodePartial(result.Text, &payload); err != nil {
			return 0, nil, apperr.Wrap(apperr.KindGeneratorFailure, "model produced undecodable mcqs", err)
		}
		existing, err := uow.McqRepository().FindContentKeys(ctx, plan.Interview.Id)
		if err != nil {
			return 0, nil, err
		}
		fresh := dedup.Filter(payload.Items, func(i mcqItem) string { return i.Id }, dedup.Keys(existing))

		mcqs := make([]*entity.Mcq, 0, len(fresh))
		for _, item := range fresh {
			mcqs = append(mcqs, &entity.Mcq{
				Id:          uuid.New(),
				InterviewId: plan.Interview.Id,
				ContentKey:  item.Id,
				Question:    item.Question,
				Options:     item.Options,
				AnswerIndex: item.AnswerIndex,
				Explanation: item.Explanation,
				CreatedAt:   time.Now(),
			})
		}
		if err := s.createInTx(ctx, uow, func() error { return uow.McqRepository().CreateBatch(ctx, mcqs) }, len(mcqs)); err != nil {
			return 0, nil, err
		}
		data, err := json.Marshal(mcqPayload{Items: fresh})
		if err != nil {
			return 0, nil, err
		}
		return len(fresh), data, nil

	case constant.ModuleQuestions:
		var payload questionPayload
		if err := genai.DecodePartial(result.Text, &payload); err != nil {
			return 0, nil, apperr.Wrap(apperr.KindGeneratorFailure, "model produced undecodable questions", err)
		}
		existing, err := uow.QuestionRepository().FindContentKeys(ctx, plan.Interview.Id)
		if err != nil {
			return 0, nil, err
		}
		fresh := dedup.Filter(payload.Items, func(i questionItem) string { return i.Id }, dedup.Keys(existing))

		questions := make([]*entity.Question, 0, len(fresh))
		for _, item := range fresh {
			questions = append(questions, &entity.Question{
				Id:          uuid.New(),
				InterviewId: plan.Interview.Id,
				ContentKey:  item.Id,
				Prompt:      item.Prompt,
				Guidance:    item.Guidance,
				Category:    item.Category,
				CreatedAt:   time.Now(),
			})
		}
		if err := s.createInTx(ctx, uow, func() error { return uow.QuestionRepository().CreateBatch(ctx, questions) }, len(questions)); err != nil {
			return 0, nil, err
		}
		data, err := json.Marshal(questionPayload{Items: fresh})
		if err != nil {
			return 0, nil, err
		}
		return len(fresh), data, nil

	case constant.ModuleFlashcards:
		var payload flashcardPayload
		if err := genai.DecodePartial(result.Text, &payload); err != nil {
			return 0, nil, apperr.Wrap(apperr.KindGeneratorFailure, "model produced undecodable flashcards", err)
		}
		existing, err := uow.FlashcardRepository().FindContentKeys(ctx, plan.Interview.Id)
		if err != nil {
			return 0, nil, err
		}
		fresh := dedup.Filter(payload.Items, func(i flashcardItem) string { return i.Id }, dedup.Keys(existing))

		cards := make([]*entity.Flashcard, 0, len(fresh))
		for _, item := range fresh {
			cards = append(cards, &entity.Flashcard{
				Id:          uuid.New(),
				InterviewId: plan.Interview.Id,
				ContentKey:  item.Id,
				Front:       item.Front,
				Back:        item.Back,
				CreatedAt:   time.Now(),
			})
		}
		if err := s.createInTx(ctx, uow, func() error { return uow.FlashcardRepository().CreateBatch(ctx, cards) }, len(cards)); err != nil {
			return 0, nil, err
		}
		data, err := json.Marshal(flashcardPayload{Items: fresh})
		if err != nil {
			return 0, nil, err
		}
		return len(fresh), data, nil
	}

	return 0, nil, apperr.Invalid(fmt.Sprintf("unknown module %q", job.Module))
}

func (s *generationService) createInTx(ctx context.Context, uow unitofwork.UnitOfWork, create func() error, count int) error {
	if count == 0 {
		// Everything the model produced was a duplicate; nothing to store.
		return nil
	}
	if err := uow.Begin(ctx); err != nil {
		return apperr.Wrap(apperr.KindPersistenceFailure, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := create(); err != nil {
		return apperr.Wrap(apperr.KindPersistenceFailure, "failed to store generated items", err)
	}
	if err := uow.Commit(); err != nil {
		return apperr.Wrap(apperr.KindPersistenceFailure, "failed to commit generated items", err)
	}
	return nil
}

// recordUsage hands the provenance of one finished generation to the usage
// consumer. Best effort: a bus hiccup must not fail an otherwise committed
// generation.
func (s *generationService) recordUsage(ctx context.Context, plan *GenerationPlan, job *ModuleJob, result *genai.Result, committed int) {
	amount := 0.0
	if job.Charged {
		amount = job.Cost
	}
	msg := dto.PublishGenerationUsageMessage{
		UserId:           plan.UserId,
		InterviewId:      plan.Interview.Id,
		Module:           job.Module,
		Amount:           amount,
		Model:            result.Model,
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		LatencyMs:        result.Latency.Milliseconds(),
		ItemCount:        committed,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("GenerationService", "failed to publish usage record", map[string]interface{}{
			"module": job.Module,
			"error":  err.Error(),
		})
	}
}

func (s *generationService) publishCompletionEvent(ctx context.Context, plan *GenerationPlan, job *ModuleJob, committed int) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "GENERATION_COMPLETED",
		Data: map[string]interface{}{
			"user_id":      plan.UserId.String(),
			"interview_id": plan.Interview.Id.String(),
			"module":       job.Module,
			"item_count":   committed,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("GenerationService", "failed to publish completion event", map[string]interface{}{
			"module": job.Module,
			"error":  err.Error(),
		})
	}
}

func (s *generationService) StreamStatus(ctx context.Context, userId, interviewId uuid.UUID, module string) (*dto.StreamStatusResponse, error) {
	if !constant.IsValidModule(module) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown module %q", module))
	}
	if err := s.authorizeInterview(ctx, userId, interviewId); err != nil {
		return nil, err
	}

	status, err := s.streamStore.GetStatus(ctx, constant.ScopeKey(interviewId, module))
	if err != nil {
		return nil, err
	}
	return &dto.StreamStatusResponse{
		Module:    module,
		Status:    status.Status,
		StreamId:  status.StreamId,
		StartedAt: status.CreatedAt,
	}, nil
}

func (s *generationService) Replay(ctx context.Context, userId, interviewId uuid.UUID, module string) ([][]byte, error) {
	if !constant.IsValidModule(module) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown module %q", module))
	}
	if err := s.authorizeInterview(ctx, userId, interviewId); err != nil {
		return nil, err
	}

	scopeKey := constant.ScopeKey(interviewId, module)
	status, err := s.streamStore.GetStatus(ctx, scopeKey)
	if err != nil {
		return nil, err
	}
	if status.Status == constant.StreamStatusNone {
		return nil, apperr.NotFound("no stream session for this module")
	}
	return s.streamStore.ReadBuffer(ctx, scopeKey)
}

func (s *generationService) authorizeInterview(ctx context.Context, userId, interviewId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: interviewId})
	if err != nil {
		return err
	}
	if interview == nil {
		return apperr.NotFound("interview not found")
	}
	if interview.UserId != userId {
		return apperr.Forbidden("interview belongs to another user")
	}
	return nil
}
