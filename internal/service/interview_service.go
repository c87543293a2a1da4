package service

import (
	"context"
	"fmt"
	"time"

	"ai-interviewprep-be/internal/constant"
	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/pkg/apperr"
	"ai-interviewprep-be/internal/repository/specification"
	"ai-interviewprep-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IInterviewService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.InterviewResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListInterviewsRequest) (*dto.ListInterviewsResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateInterviewRequest) (*dto.UpdateInterviewResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ModuleContent(ctx context.Context, userId uuid.UUID, id uuid.UUID, module string) (*dto.ModuleContentResponse, error)
}

type interviewService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewInterviewService(uowFactory unitofwork.RepositoryFactory) IInterviewService {
	return &interviewService{
		uowFactory: uowFactory,
	}
}

func (s *interviewService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview := entity.Interview{
		Id:             uuid.New(),
		UserId:         userId,
		Role:           req.Role,
		Company:        req.Company,
		JobDescription: req.JobDescription,
		CreatedAt:      time.Now(),
	}
	if err := uow.InterviewRepository().Create(ctx, &interview); err != nil {
		return nil, err
	}
	return &dto.CreateInterviewResponse{Id: interview.Id}, nil
}

func (s *interviewService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.InterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toInterviewResponse(interview), nil
}

func (s *interviewService) List(ctx context.Context, userId uuid.UUID, req *dto.ListInterviewsRequest) (*dto.ListInterviewsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total, err := uow.InterviewRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	interviews, err := uow.InterviewRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.InterviewResponse, 0, len(interviews))
	for _, i := range interviews {
		responses = append(responses, *toInterviewResponse(i))
	}
	return &dto.ListInterviewsResponse{
		Interviews: responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *interviewService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateInterviewRequest) (*dto.UpdateInterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	interview.Role = req.Role
	interview.Company = req.Company
	interview.JobDescription = req.JobDescription
	now := time.Now()
	interview.UpdatedAt = &now

	if err := uow.InterviewRepository().Update(ctx, interview); err != nil {
		return nil, err
	}
	return &dto.UpdateInterviewResponse{Id: interview.Id}, nil
}

func (s *interviewService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	return uow.InterviewRepository().Delete(ctx, interview.Id)
}

func (s *interviewService) ModuleContent(ctx context.Context, userId uuid.UUID, id uuid.UUID, module string) (*dto.ModuleContentResponse, error) {
	if !constant.IsValidModule(module) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown module %q", module))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	byInterview := specification.ByInterviewID{InterviewID: id}
	ordered := specification.OrderBy{Field: "created_at", Desc: false}

	switch module {
	case constant.ModuleBrief:
		brief, err := uow.BriefRepository().FindByInterviewId(ctx, id)
		if err != nil {
			return nil, err
		}
		if brief == nil {
			return &dto.ModuleContentResponse{Module: module, Items: []entity.BriefSection{}}, nil
		}
		return &dto.ModuleContentResponse{Module: module, Items: brief.Sections}, nil

	case constant.ModuleMcqs:
		mcqs, err := uow.McqRepository().FindAll(ctx, byInterview, ordered)
		if err != nil {
			return nil, err
		}
		return &dto.ModuleContentResponse{Module: module, Items: mcqs}, nil

	case constant.ModuleQuestions:
		questions, err := uow.QuestionRepository().FindAll(ctx, byInterview, ordered)
		if err != nil {
			return nil, err
		}
		return &dto.ModuleContentResponse{Module: module, Items: questions}, nil

	default:
		cards, err := uow.FlashcardRepository().FindAll(ctx, byInterview, ordered)
		if err != nil {
			return nil, err
		}
		return &dto.ModuleContentResponse{Module: module, Items: cards}, nil
	}
}

func (s *interviewService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Interview, error) {
	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, apperr.NotFound("interview not found")
	}
	if interview.UserId != userId {
		return nil, apperr.Forbidden("interview belongs to another user")
	}
	return interview, nil
}

func toInterviewResponse(i *entity.Interview) *dto.InterviewResponse {
	return &dto.InterviewResponse{
		Id:             i.Id,
		Role:           i.Role,
		Company:        i.Company,
		JobDescription: i.JobDescription,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
