package controller

import (
	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/pkg/apperr"
	"ai-interviewprep-be/internal/pkg/serverutils"
	"ai-interviewprep-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ModuleContent(ctx *fiber.Ctx) error
}

type interviewController struct {
	interviewService service.IInterviewService
}

func NewInterviewController(interviewService service.IInterviewService) IInterviewController {
	return &interviewController{
		interviewService: interviewService,
	}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Get(":id/content/:module", c.ModuleContent)
}

func (c *interviewController) Create(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create interview", res))
}

func (c *interviewController) Show(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.interviewService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show interview", res))
}

func (c *interviewController) List(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}

	var req dto.ListInterviewsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperr.Invalid("malformed query parameters")
	}

	res, err := c.interviewService.List(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list interviews", res))
}

func (c *interviewController) Update(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update interview", res))
}

func (c *interviewController) Delete(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.interviewService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete interview", nil))
}

func (c *interviewController) ModuleContent(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.interviewService.ModuleContent(ctx.Context(), userId, id, ctx.Params("module"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show module content", res))
}

// principal extracts the authenticated user id placed by the JWT middleware.
func principal(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, apperr.Unauthenticated("missing principal")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Unauthenticated("malformed principal")
	}
	return userId, nil
}

func pathUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Invalid("invalid " + name + " parameter")
	}
	return id, nil
}
