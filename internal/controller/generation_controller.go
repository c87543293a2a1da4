package controller

import (
	"bufio"
	"context"
	"time"

	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/pkg/apperr"
	"ai-interviewprep-be/internal/pkg/serverutils"
	"ai-interviewprep-be/internal/service"
	"ai-interviewprep-be/pkg/sse"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	StreamStatus(ctx *fiber.Ctx) error
	Replay(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
	generationTimeout time.Duration
}

func NewGenerationController(generationService service.IGenerationService, generationTimeout time.Duration) IGenerationController {
	return &generationController{
		generationService: generationService,
		generationTimeout: generationTimeout,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":id/generate", c.Generate)
	h.Get(":id/stream/:module/status", c.StreamStatus)
	h.Get(":id/stream/:module/replay", c.Replay)
}

// Generate validates and charges the request, then streams module frames as
// SSE. Pre-stream failures come back as plain JSON errors; once headers go
// out, failures become terminal error frames instead.
func (c *generationController) Generate(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	interviewId, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.GenerateModulesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	plan, err := c.generationService.PrepareGeneration(ctx.Context(), userId, interviewId, &req)
	if err != nil {
		return err
	}

	sse.SetHeaders(ctx, plan.StreamId())

	timeout := c.generationTimeout
	svc := c.generationService
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// Detached from the request context: a client that walks away must
		// not cancel a generation that is already charged and running.
		genCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.RunPlan(genCtx, plan, sse.NewWriter(w))
	}))
	return nil
}

func (c *generationController) StreamStatus(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	interviewId, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.generationService.StreamStatus(ctx.Context(), userId, interviewId, ctx.Params("module"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show stream status", res))
}

// Replay pushes the buffered frames of the module's last stream, byte for
// byte in the order they were originally emitted.
func (c *generationController) Replay(ctx *fiber.Ctx) error {
	userId, err := principal(ctx)
	if err != nil {
		return err
	}
	interviewId, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	module := ctx.Params("module")

	status, err := c.generationService.StreamStatus(ctx.Context(), userId, interviewId, module)
	if err != nil {
		return err
	}

	frames, err := c.generationService.Replay(ctx.Context(), userId, interviewId, module)
	if err != nil {
		return err
	}

	sse.SetHeaders(ctx, status.StreamId)
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for _, frame := range frames {
			if _, err := w.Write(frame); err != nil {
				return
			}
		}
		w.Flush()
	}))
	return nil
}
